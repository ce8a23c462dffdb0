package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investo"
	"github.com/etnz/investo/date"
	"github.com/google/subcommands"
)

// addCmd adds a buy, sell, deposit or withdraw transaction.
type addCmd struct {
	kind     investo.Kind
	id       string
	amount   string
	date     string
	price    string
	memo     string
	all      bool
	fraction float64
}

func newAddCmd(kind investo.Kind) *addCmd { return &addCmd{kind: kind} }

func (c *addCmd) Name() string { return string(c.kind) }
func (c *addCmd) Synopsis() string {
	switch c.kind {
	case investo.Buy:
		return "record a purchase of an instrument"
	case investo.Sell:
		return "record a sale of an instrument"
	case investo.Deposit:
		return "record a deposit on an account"
	default:
		return "record a withdrawal from an account"
	}
}
func (c *addCmd) Usage() string {
	usage := fmt.Sprintf(`inv %s -i <id> -a <amount> [-d <date>] [-p <price>] [-m <memo>]
`, c.kind)
	if !c.kind.Inflow() {
		usage += fmt.Sprintf(`inv %s -i <id> (-all | -fraction <f>) [-d <date>] [-p <price>] [-m <memo>]
`, c.kind)
	}
	return usage + `
  Appends a transaction to the ledger. The amount is in the portfolio currency,
  the number of units is derived from the price on that date, or from -p.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "i", "", "Instrument id (e.g. 'AAPL', or 'CASH' for the cash account)")
	f.StringVar(&c.amount, "a", "", "Amount of the transaction (e.g. '1500.00')")
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.price, "p", "", "Price per unit, overrides the market price")
	f.StringVar(&c.memo, "m", "", "An optional note")
	if !c.kind.Inflow() {
		f.BoolVar(&c.all, "all", false, "Close the whole position")
		f.Float64Var(&c.fraction, "fraction", 0, "Fraction of the position value, between 0 and 1")
	}
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, market, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.all || c.fraction != 0 {
		fraction := c.fraction
		if c.all {
			fraction = 1
		}
		if tx, err = sellPosition(ledger, market, tx, fraction); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	} else if err := ledger.Add(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodeTransaction(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s %s of %s on %s (id %s)\n", tx.Kind, tx.Amount.Format(cfg.Currency), tx.Instrument, tx.Date, tx.ID)
	return subcommands.ExitSuccess
}

// transaction builds the transaction from the flags. Its amount is left
// zero when it is derived from the position.
func (c *addCmd) transaction() (investo.Transaction, error) {
	if c.id == "" {
		return investo.Transaction{}, fmt.Errorf("-i flag is required")
	}
	derived := c.all || c.fraction != 0
	if derived && c.amount != "" {
		return investo.Transaction{}, fmt.Errorf("-a cannot be used with -all or -fraction")
	}
	if c.all && c.fraction != 0 {
		return investo.Transaction{}, fmt.Errorf("-all and -fraction cannot be used together")
	}
	if c.fraction < 0 || c.fraction > 1 {
		return investo.Transaction{}, fmt.Errorf("-fraction must be between 0 and 1, got %v", c.fraction)
	}
	if !derived && c.amount == "" {
		return investo.Transaction{}, fmt.Errorf("-a flag is required")
	}
	on, err := date.Parse(c.date)
	if err != nil {
		return investo.Transaction{}, fmt.Errorf("invalid date: %w", err)
	}
	tx := investo.Transaction{
		ID:         investo.NewID(),
		Instrument: c.id,
		Kind:       c.kind,
		Date:       on,
		Memo:       c.memo,
	}
	if !derived {
		if tx.Amount, err = investo.ParseMoney(c.amount); err != nil {
			return investo.Transaction{}, fmt.Errorf("invalid amount %q: %w", c.amount, err)
		}
	}
	if c.price != "" {
		if tx.Price, err = investo.ParseMoney(c.price); err != nil {
			return investo.Transaction{}, fmt.Errorf("invalid price %q: %w", c.price, err)
		}
	}
	return tx, nil
}

// sellPosition adds to the ledger a sale of a fraction of the units held
// just before tx, and returns it with its amount set.
//
// The amount is the exact value of those units at the price the engine
// applies to tx: its own price when set, the market price otherwise. Selling
// the whole position therefore leaves no units behind.
func sellPosition(ledger *investo.Ledger, market *investo.Market, tx investo.Transaction, fraction float64) (investo.Transaction, error) {
	// A placeholder amount puts tx in its replay slot, the engine then tells
	// the units and the price it is applied with.
	tx.Amount = investo.M(1)
	if err := ledger.Add(tx); err != nil {
		return tx, err
	}
	r := run(ledger, market)
	amount, err := positionAmount(r.Holdings, tx, fraction)
	if err != nil {
		ledger.Delete(tx.ID)
		return tx, err
	}
	tx.Amount = amount
	return tx, ledger.Replace(tx)
}

// positionAmount returns the value of a fraction of the units held just
// before tx, at the price tx is applied with. The amount is not rounded.
func positionAmount(h *investo.Holdings, tx investo.Transaction, fraction float64) (investo.Money, error) {
	fill, ok := h.Fill(tx.Instrument, tx.ID)
	if !ok {
		return investo.Money{}, fmt.Errorf("no price for %s on %s, use -p", tx.Instrument, tx.Date)
	}
	if !fill.Before.IsPositive() {
		return investo.Money{}, fmt.Errorf("no %s position to sell on %s", tx.Instrument, tx.Date)
	}
	amount := fill.Price.Mul(fill.Before)
	if fraction < 1 {
		amount = amount.MulRatio(fraction)
	}
	return amount, nil
}
