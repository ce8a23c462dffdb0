package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/investo"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the numeric portfolio summary.
func SummaryMarkdown(s investo.Summary, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Summary")
	doc.PlainText(fmt.Sprintf("Net Worth: %s", s.NetWorth.Format(currency)))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Item", "Amount"},
		Rows: [][]string{
			{"Cash Balance", s.CashBalance.Format(currency)},
			{"Cash Share", s.CashShare().String()},
			{"Stocks Value", s.StockValue.Format(currency)},
			{"Stocks Invested", s.StockInvested.Format(currency)},
			{"Stocks Sold", s.StockSold.Format(currency)},
			{"Stocks Return", s.StockReturn.SignedString(currency)},
		},
	}
	doc.Table(table)
	return doc.String()
}
