// Package renderer renders engine results as markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/investo"
	md "github.com/nao1215/markdown"
)

// HoldingsMarkdown renders the holdings series as a table, one row per date
// and one column per instrument. Only the last tail dates are rendered when
// tail is positive.
func HoldingsMarkdown(h *investo.Holdings, ledger *investo.Ledger, currency string, tail int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Holdings")

	if len(h.Points) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}

	header := []string{"Date"}
	alignment := []md.TableAlignment{md.AlignLeft}
	for _, p := range h.Positions {
		inst, _ := ledger.Instrument(p.Instrument)
		header = append(header, inst.DisplayName())
		alignment = append(alignment, md.AlignRight)
	}
	header = append(header, investo.TotalKey)
	alignment = append(alignment, md.AlignRight)

	points := h.Points
	if tail > 0 && len(points) > tail {
		points = points[len(points)-tail:]
	}

	table := md.TableSet{Alignment: alignment, Header: header, Rows: [][]string{}}
	for _, pt := range points {
		row := []string{pt.Date.String()}
		for _, p := range h.Positions {
			cell := ""
			if v, ok := pt.Values[p.Instrument]; ok {
				cell = v.Format(currency)
			}
			row = append(row, cell)
		}
		row = append(row, pt.Total.Format(currency))
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)
	if len(points) < len(h.Points) {
		doc.PlainText(fmt.Sprintf("Last %d of %d dates.", len(points), len(h.Points)))
	}
	return doc.String()
}
