package renderer

import (
	"bytes"

	"github.com/etnz/investo"
	md "github.com/nao1215/markdown"
)

// TransactionsMarkdown renders transactions as a table with their ids, so
// that they can be edited or removed.
func TransactionsMarkdown(txs []investo.Transaction, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Transactions")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Date", "ID", "Kind", "Instrument", "Amount", "Price", "Memo"},
		Rows:      [][]string{},
	}
	for _, tx := range txs {
		price := ""
		if p, ok := tx.OverridePrice(); ok {
			price = p.Format(currency)
		}
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			md.Code(tx.ID),
			string(tx.Kind),
			tx.Instrument,
			tx.Amount.Format(currency),
			price,
			tx.Memo,
		})
	}
	doc.Table(table)
	return doc.String()
}
