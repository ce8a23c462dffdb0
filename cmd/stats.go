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

type statsCmd struct {
	owned bool
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display performance statistics" }
func (*statsCmd) Usage() string {
	return `inv stats [-owned]

  Displays, for the total portfolio and each instrument, the final value,
  the amounts invested and withdrawn, the total and annualized returns and
  the maximum drawdown.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.owned, "owned", false, "Only display instruments currently owned")
}

func (c *statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, r, err := evaluate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	stats := r.Stats
	if c.owned {
		stats = investo.Owned(stats)
	}
	printMarkdown(renderer.StatsMarkdown(stats, cfg.Currency))
	return subcommands.ExitSuccess
}
