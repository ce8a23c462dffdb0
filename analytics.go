package investo

import (
	"math"

	"github.com/etnz/investo/date"
)

// daysPerYear is the average length of a calendar year used to annualize returns.
const daysPerYear = 365.25

// Stat summarizes the performance of an instrument, or of the total
// portfolio when Instrument is empty.
type Stat struct {
	Instrument  string // empty for the total portfolio.
	Name        string
	Color       string
	First, Last date.Date // first and last valued dates.
	FinalValue  Money
	Units       Units // units held at Last, zero for the total portfolio.
	Deposits    Money // total bought or deposited.
	Withdrawals Money // total sold or withdrawn.

	TotalReturn      Ratio // simple money-weighted return.
	AnnualizedReturn Ratio
	MaxDrawdown      Ratio // always <= 0.
}

// IsTotal reports whether the stat is the aggregate of all instruments.
func (s Stat) IsTotal() bool { return s.Instrument == "" }

// Gain returns the absolute money-weighted gain.
func (s Stat) Gain() Money { return s.FinalValue.Add(s.Withdrawals).Sub(s.Deposits) }

// totalReturn is (final + withdrawals - deposits) / deposits, or 0 without deposits.
func totalReturn(final, deposits, withdrawals Money) Ratio {
	if !deposits.IsPositive() {
		return 0
	}
	return Ratio(final.Add(withdrawals).Sub(deposits).Ratio(deposits))
}

// annualizedReturn is ((final + withdrawals) / deposits)^(365.25/days) - 1, or 0 when undefined.
func annualizedReturn(final, deposits, withdrawals Money, days int) Ratio {
	if days <= 0 || !deposits.IsPositive() {
		return 0
	}
	growth := final.Add(withdrawals).Ratio(deposits)
	return Ratio(math.Pow(growth, daysPerYear/float64(days)) - 1)
}

// maxDrawdown returns the largest relative decline from a running peak.
func maxDrawdown(values []Money) Ratio {
	var peak Money
	var dd Ratio
	for i, v := range values {
		if i == 0 || v.GreaterThan(peak) {
			peak = v
		}
		if !peak.IsPositive() {
			continue
		}
		if d := Ratio(v.Sub(peak).Ratio(peak)); d < dd {
			dd = d
		}
	}
	return dd
}

// newStat computes the formulas common to instruments and the total portfolio.
func newStat(first, last date.Date, values []Money, deposits, withdrawals Money) Stat {
	final := values[len(values)-1]
	days := last.DaysSince(first)
	return Stat{
		First:            first,
		Last:             last,
		FinalValue:       final,
		Deposits:         deposits,
		Withdrawals:      withdrawals,
		TotalReturn:      totalReturn(final, deposits, withdrawals),
		AnnualizedReturn: annualizedReturn(final, deposits, withdrawals, days),
		MaxDrawdown:      maxDrawdown(values),
	}
}

// ComputeStats returns the total portfolio stat followed by one stat per
// instrument with at least one valued date, in ledger declaration order.
//
// An empty holdings series yields no stats at all.
func ComputeStats(h *Holdings, ledger *Ledger) []Stat {
	if len(h.Points) == 0 {
		return []Stat{}
	}
	stats := make([]Stat, 1, len(h.Positions)+1)
	var deposits, withdrawals Money
	for _, pos := range h.Positions {
		first, _, ok := pos.Values.First()
		if !ok {
			continue // never priced.
		}
		last, _, _ := pos.Values.Latest()
		values := make([]Money, 0, pos.Values.Len())
		for _, v := range pos.Values.Values() {
			values = append(values, v)
		}
		s := newStat(first, last, values, pos.Deposits, pos.Withdrawals)
		inst, _ := ledger.Instrument(pos.Instrument)
		s.Instrument, s.Name, s.Color = inst.ID, inst.DisplayName(), inst.Color
		s.Units = pos.UnitsOn(last)
		stats = append(stats, s)

		deposits = deposits.Add(pos.Deposits)
		withdrawals = withdrawals.Add(pos.Withdrawals)
	}

	totals := make([]Money, 0, len(h.Points))
	for _, p := range h.Points {
		totals = append(totals, p.Total)
	}
	first, last := h.Points[0].Date, h.Points[len(h.Points)-1].Date
	stats[0] = newStat(first, last, totals, deposits, withdrawals)
	stats[0].Name, stats[0].Color = TotalKey, totalColor
	return stats
}

// Owned keeps the total portfolio and the instruments currently held.
func Owned(stats []Stat) []Stat {
	var owned []Stat
	for _, s := range stats {
		if s.IsTotal() || s.Units.IsPositive() {
			owned = append(owned, s)
		}
	}
	return owned
}
