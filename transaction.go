package investo

import (
	"errors"
	"fmt"

	"github.com/etnz/investo/date"
)

// Kind is the kind of a transaction.
type Kind string

// Transaction kinds. Deposit is an alias of Buy, Withdraw an alias of Sell:
// the distinction is presentational only.
const (
	Buy      Kind = "buy"
	Sell     Kind = "sell"
	Deposit  Kind = "deposit"
	Withdraw Kind = "withdraw"
)

// ParseKind parses a transaction kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Buy, Sell, Deposit, Withdraw:
		return k, nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
}

// Inflow reports whether the kind adds units (buy or deposit).
func (k Kind) Inflow() bool { return k == Buy || k == Deposit }

// Transaction is a single buy, sell, deposit or withdraw event on an instrument.
type Transaction struct {
	ID         string    // stable identifier, ties on the same date are ordered by ascending ID.
	Instrument string    // instrument id.
	Kind       Kind      // what happened.
	Amount     Money     // currency amount, strictly positive.
	Date       date.Date // day of the event.
	Price      Money     // optional price override, zero when unset.
	Memo       string    // free text.
}

// OverridePrice returns the caller supplied price, if any.
func (t Transaction) OverridePrice() (Money, bool) {
	return t.Price, t.Price.IsPositive()
}

// Validate returns an error with all validation failures.
func (t Transaction) Validate() error {
	var errs error
	if t.Instrument == "" {
		errs = errors.Join(errs, errors.New("instrument is missing"))
	}
	if _, err := ParseKind(string(t.Kind)); err != nil {
		errs = errors.Join(errs, err)
	}
	if !t.Amount.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("amount must be positive, got %s", t.Amount))
	}
	if t.Date.IsZero() {
		errs = errors.Join(errs, errors.New("date is missing"))
	}
	if t.Price.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("price must be positive, got %s", t.Price))
	}
	if errs != nil {
		return fmt.Errorf("invalid %s transaction %q on %v: %w", t.Kind, t.ID, t.Date, errs)
	}
	return nil
}

// less orders transactions by date, then by ascending id.
func less(a, b Transaction) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

// MarshalJSON writes the transaction as a ledger line.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Kind)
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("instrument", t.Instrument)
	w.Append("amount", t.Amount)
	if _, ok := t.OverridePrice(); ok {
		w.Append("price", t.Price)
	}
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}
