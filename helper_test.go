package investo

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/investo/date"
)

// D is a helper for test to create dates from const.
func D(s string) date.Date { return date.MustParse(s) }

// daily returns quotes for every day from 'from' with the given prices.
func daily(from string, prices ...float64) []PricePoint {
	start := D(from)
	points := make([]PricePoint, 0, len(prices))
	for i, p := range prices {
		points = append(points, PricePoint{Date: start.Add(i), Price: M(p)})
	}
	return points
}

// constant returns quotes for every day in [from, to] at the same price.
func constant(from, to string, price float64) []PricePoint {
	var points []PricePoint
	for on := D(from); !on.After(D(to)); on = on.Add(1) {
		points = append(points, PricePoint{Date: on, Price: M(price)})
	}
	return points
}

// tx is a helper to create a transaction.
func tx(id, instrument string, kind Kind, amount float64, on string) Transaction {
	return Transaction{ID: id, Instrument: instrument, Kind: kind, Amount: M(amount), Date: D(on)}
}

// newTestLedger creates a ledger or fail the test.
func newTestLedger(t *testing.T, txs ...Transaction) *Ledger {
	t.Helper()
	l := NewLedger()
	if err := l.Add(txs...); err != nil {
		t.Fatalf("ledger.Add() error = %v", err)
	}
	return l
}

// dump renders a result in a stable textual form.
func dump(r Result) string {
	var b strings.Builder
	for _, p := range r.Holdings.Points {
		keys := make([]string, 0, len(p.Values))
		for k := range p.Values {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		fmt.Fprintf(&b, "%s", p.Date)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, p.Values[k])
		}
		fmt.Fprintf(&b, " total=%s\n", p.Total)
	}
	for _, s := range r.Stats {
		fmt.Fprintf(&b, "%q %s %s %s %s %v %v %v\n", s.Instrument, s.FinalValue, s.Deposits, s.Withdrawals, s.Units, s.TotalReturn, s.AnnualizedReturn, s.MaxDrawdown)
	}
	for _, i := range r.Issues {
		fmt.Fprintln(&b, i)
	}
	return b.String()
}

// pointOn returns the holdings point on a date or fails the test.
func pointOn(t *testing.T, r Result, on string) HoldingsPoint {
	t.Helper()
	for _, p := range r.Holdings.Points {
		if p.Date == D(on) {
			return p
		}
	}
	t.Fatalf("no holdings point on %s", on)
	return HoldingsPoint{}
}

// statOf returns the stat of an instrument ("" for the total) or fails the test.
func statOf(t *testing.T, r Result, id string) Stat {
	t.Helper()
	for _, s := range r.Stats {
		if s.Instrument == id {
			return s
		}
	}
	t.Fatalf("no stat for %q", id)
	return Stat{}
}
