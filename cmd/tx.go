package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investo"
	"github.com/etnz/investo/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	instrument string
	tail       int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions with their ids" }
func (*txCmd) Usage() string {
	return `inv tx [-i <id>] [-tail <n>]

  Lists transactions ordered by date, the order in which they are replayed.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.instrument, "i", "", "Only list the transactions of this instrument")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var txs []investo.Transaction
	if p.instrument != "" {
		txs = ledger.ByInstrument()[p.instrument]
	} else {
		txs = ledger.Transactions()
	}
	if p.tail > 0 && len(txs) > p.tail {
		txs = txs[len(txs)-p.tail:]
	}
	out := renderer.TransactionsMarkdown(txs, cfg.Currency)
	if ledger.Len() > 0 {
		out += fmt.Sprintf("\n%d of %d transactions, the ledger covers %s.\n", len(txs), ledger.Len(), ledger.Range())
	}
	printMarkdown(out)
	return subcommands.ExitSuccess
}
