package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investo"
	"github.com/etnz/investo/date"
	"github.com/google/subcommands"
)

type editCmd struct {
	id     string
	amount string
	date   string
	price  string
	kind   string
	memo   string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a transaction" }
func (*editCmd) Usage() string {
	return `inv edit -id <id> [-a <amount>] [-d <date>] [-p <price>] [-k <kind>] [-m <memo>]

  Changes the fields of an existing transaction. Fields without a flag are
  left unchanged. Use -p 0 to remove a price override.
  Transaction ids are listed by 'inv tx'.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to edit")
	f.StringVar(&c.amount, "a", "", "New amount")
	f.StringVar(&c.date, "d", "", "New date (YYYY-MM-DD)")
	f.StringVar(&c.price, "p", "", "New price override, 0 to remove it")
	f.StringVar(&c.kind, "k", "", "New kind (buy, sell, deposit, withdraw)")
	f.StringVar(&c.memo, "m", "", "New memo")
}

// apply returns tx with the flags applied.
func (c *editCmd) apply(tx investo.Transaction) (investo.Transaction, error) {
	var err error
	if c.amount != "" {
		if tx.Amount, err = investo.ParseMoney(c.amount); err != nil {
			return tx, fmt.Errorf("invalid amount %q: %w", c.amount, err)
		}
	}
	if c.date != "" {
		if tx.Date, err = date.Parse(c.date); err != nil {
			return tx, fmt.Errorf("invalid date: %w", err)
		}
	}
	if c.price != "" {
		if tx.Price, err = investo.ParseMoney(c.price); err != nil {
			return tx, fmt.Errorf("invalid price %q: %w", c.price, err)
		}
	}
	if c.kind != "" {
		if tx.Kind, err = investo.ParseKind(c.kind); err != nil {
			return tx, err
		}
	}
	if c.memo != "" {
		tx.Memo = c.memo
	}
	return tx, nil
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id flag is required.")
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	tx, err := ledger.Get(c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if tx, err = c.apply(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := ledger.Replace(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Edited transaction %s\n", tx.ID)
	return subcommands.ExitSuccess
}

type rmCmd struct {
	id string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove a transaction" }
func (*rmCmd) Usage() string {
	return `inv rm -id <id>

  Removes a transaction from the ledger and prints it, so that it can be
  restored by appending the line back to the ledger.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to remove")
}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id flag is required.")
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	removed, err := ledger.Delete(c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	line, _ := json.Marshal(removed)
	fmt.Printf("Removed %s\n", line)
	return subcommands.ExitSuccess
}
