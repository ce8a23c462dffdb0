package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/investo"
	"github.com/etnz/investo/date"
	"github.com/etnz/investo/insight"
	"github.com/etnz/investo/parser"
	"github.com/google/subcommands"
)

// minConfidence is the confidence under which a parsed transaction is not
// recorded without review.
const minConfidence = 0.5

type parseCmd struct {
	model  string
	yes    bool
	models insight.Models // Gemini when nil.
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "record a transaction written in plain English" }
func (*parseCmd) Usage() string {
	return `inv parse [-y] [-model <name>] <text>

  Asks Gemini to read a buy or a sale from the text, for instance:

    inv parse "bought $500 of Microsoft 6 months ago"
    inv parse "sold half of my Apple shares last week"

  The transaction is only displayed, -y records it. Sales of a fraction or
  of all of a position are computed from the position, like sell -fraction
  and sell -all. Deposits and withdrawals are used for the cash account.
`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "Gemini model, overrides the configuration")
	f.BoolVar(&c.yes, "y", false, "Record the transaction")
}

func (c *parseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text := strings.Join(f.Args(), " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(os.Stderr, "Error: no text to parse")
		return subcommands.ExitUsageError
	}

	ledger, market, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	holdings := portfolio(ledger, run(ledger, market))

	models := c.models
	if models == nil {
		client, err := insight.NewClient(ctx, os.Getenv(cfg.Gemini.APIKeyEnv))
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
			return subcommands.ExitFailure
		}
		models = client.Models
	}
	model := cfg.Gemini.Model
	if c.model != "" {
		model = c.model
	}

	today := date.Today()
	draft, err := parser.New(models, model).Parse(ctx, text, today, cfg.Currency, holdings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	tx, err := c.transaction(ledger, market, draft, holdings, today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	line := fmt.Sprintf("%s %s of %s on %s (confidence %.0f%%)", tx.Kind, tx.Amount.Format(cfg.Currency), tx.Instrument, tx.Date, draft.Confidence*100)
	if !c.yes {
		fmt.Printf("Parsed %s\nRun again with -y to record it.\n", line)
		return subcommands.ExitSuccess
	}
	if draft.Confidence < minConfidence {
		fmt.Fprintf(os.Stderr, "Error: parsed %s is too uncertain, record it with inv %s\n", line, tx.Kind)
		return subcommands.ExitFailure
	}
	if err := EncodeTransaction(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s (id %s)\n", line, tx.ID)
	return subcommands.ExitSuccess
}

// transaction completes the draft into a transaction added to the ledger.
func (c *parseCmd) transaction(ledger *investo.Ledger, market *investo.Market, d parser.Draft, holdings []parser.Holding, today date.Date) (investo.Transaction, error) {
	id, err := d.Resolve(holdings)
	if err != nil {
		return investo.Transaction{}, err
	}
	tx := investo.Transaction{
		ID:         investo.NewID(),
		Instrument: id,
		Kind:       d.Kind,
		Date:       d.Date,
		Amount:     d.Amount,
	}
	if tx.Date.IsZero() {
		tx.Date = today
	}
	if inst, ok := ledger.Instrument(id); (ok && inst.Synthetic) || id == investo.CashID {
		tx.Kind = investo.Deposit
		if d.Kind == investo.Sell {
			tx.Kind = investo.Withdraw
		}
	}
	if !d.Derived() {
		return tx, ledger.Add(tx)
	}
	fraction := d.Fraction
	if d.SellAll {
		fraction = 1
	}
	return sellPosition(ledger, market, tx, fraction)
}

// portfolio lists the instruments currently held, for the parser to resolve
// names against.
func portfolio(ledger *investo.Ledger, r investo.Result) []parser.Holding {
	var holdings []parser.Holding
	for _, s := range investo.Owned(r.Stats) {
		if s.IsTotal() {
			continue
		}
		holdings = append(holdings, parser.Holding{ID: s.Instrument, Name: s.Name, Value: s.FinalValue})
	}
	// declared instruments that are not valued yet can still be named.
	for _, inst := range ledger.Instruments() {
		held := slices.ContainsFunc(holdings, func(h parser.Holding) bool { return h.ID == inst.ID })
		if !held {
			holdings = append(holdings, parser.Holding{ID: inst.ID, Name: inst.DisplayName()})
		}
	}
	return holdings
}
