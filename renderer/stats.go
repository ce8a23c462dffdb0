package renderer

import (
	"bytes"

	"github.com/etnz/investo"
	md "github.com/nao1215/markdown"
)

// StatsMarkdown renders stat records, the total portfolio first.
func StatsMarkdown(stats []investo.Stat, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Performance")

	if len(stats) == 0 {
		doc.PlainText("No valued holdings.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Asset", "Value", "Invested", "Withdrawn", "Gain", "Return", "Annualized", "Max Drawdown"},
		Rows:   [][]string{},
	}
	for _, s := range stats {
		name := s.Name
		if s.IsTotal() {
			name = md.Bold(s.Name)
		}
		table.Rows = append(table.Rows, []string{
			name,
			s.FinalValue.Format(currency),
			s.Deposits.Format(currency),
			s.Withdrawals.Format(currency),
			s.Gain().SignedString(currency),
			s.TotalReturn.SignedString(),
			s.AnnualizedReturn.SignedString(),
			s.MaxDrawdown.SignedString(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// IssuesMarkdown renders the data-quality issues raised by an evaluation.
// It returns an empty string when there are none.
func IssuesMarkdown(issues []investo.Issue) string {
	if len(issues) == 0 {
		return ""
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Issues")
	items := make([]string, 0, len(issues))
	for _, i := range issues {
		items = append(items, i.String())
	}
	doc.BulletList(items...)
	return doc.String()
}
