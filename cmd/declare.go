package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investo"
	"github.com/google/subcommands"
)

type declareCmd struct {
	id    string
	name  string
	color string
	cash  bool
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare or update an instrument" }
func (*declareCmd) Usage() string {
	return `inv declare -i <id> [-n <name>] [-color <color>] [-cash]

  Declares an instrument, or updates its display name and color. Instruments
  are otherwise declared on first use, named after their id.
  A -cash instrument is a synthetic account valued at 1 per unit.
`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "i", "", "Instrument id, the ticker symbol (e.g. 'AAPL')")
	f.StringVar(&c.name, "n", "", "Display name")
	f.StringVar(&c.color, "color", "", "Color hint (e.g. '#3b82f6'), picked from the palette by default")
	f.BoolVar(&c.cash, "cash", false, "Declare a synthetic account with a constant price of 1")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -i flag is required.")
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	inst := investo.Instrument{ID: c.id, Name: c.name, Color: c.color, Synthetic: c.cash}
	if c.id == investo.CashID {
		inst.Synthetic = true
	}
	if old, ok := ledger.Instrument(c.id); ok && c.name == "" {
		inst.Name = old.Name
	}
	if err := ledger.Declare(inst); err != nil {
		fmt.Fprintf(os.Stderr, "Error declaring instrument: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Declared %s\n", c.id)
	return subcommands.ExitSuccess
}
