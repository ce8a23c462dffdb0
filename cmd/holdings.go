package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investo/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	tail   int
	issues bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the value of every holding over time" }
func (*holdingsCmd) Usage() string {
	return `inv holdings [-tail <n>] [-issues]

  Displays the daily value of each instrument and of the total portfolio,
  from the first transaction to the last known price.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tail, "tail", 10, "Show only the last N dates, 0 for all")
	f.BoolVar(&c.issues, "issues", false, "Also display data quality issues")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, r, err := evaluate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	out := renderer.HoldingsMarkdown(r.Holdings, ledger, cfg.Currency, c.tail)
	if c.issues {
		out += renderer.IssuesMarkdown(r.Issues)
	}
	printMarkdown(out)
	return subcommands.ExitSuccess
}
