package investo

import (
	"slices"

	"github.com/etnz/investo/date"
)

// PricePoint is a daily closing price.
type PricePoint struct {
	Date  date.Date
	Price Money
}

// Quotes are raw, possibly sparse, price points per instrument id as
// returned by a Feed.
type Quotes map[string][]PricePoint

// Dates returns the dates of all quotes, unsorted.
func (q Quotes) dates() []date.Date {
	var days []date.Date
	for _, points := range q {
		for _, p := range points {
			days = append(days, p.Date)
		}
	}
	return days
}

// Prices are forward-filled prices on a unified date axis.
type Prices struct {
	axis   []date.Date
	series map[string]*date.History[Money]
}

// Normalize aligns quotes onto one date axis and forward-fills the gaps.
//
// The axis is the sorted union of every quote date and every transaction
// date. Each instrument is priced from its first valid quote onward, dates
// before it stay unpriced. Quotes that are not strictly positive are
// ignored. Synthetic instruments ignore quotes and are priced 1 on every
// date of the axis.
func Normalize(quotes Quotes, txDates []date.Date, synthetic ...string) *Prices {
	p := &Prices{
		axis:   date.Union(quotes.dates(), txDates),
		series: make(map[string]*date.History[Money]),
	}

	for id, points := range quotes {
		if slices.Contains(synthetic, id) {
			continue
		}
		var known date.History[Money]
		for _, pt := range points {
			if pt.Price.IsPositive() {
				known.Append(pt.Date, pt.Price)
			}
		}
		first, _, ok := known.First()
		if !ok {
			continue
		}
		filled := new(date.History[Money])
		var last Money
		for _, on := range p.axis {
			if on.Before(first) {
				continue
			}
			if v, ok := known.Get(on); ok {
				last = v
			}
			filled.Append(on, last)
		}
		p.series[id] = filled
	}

	for _, id := range synthetic {
		one := new(date.History[Money])
		for _, on := range p.axis {
			one.Append(on, M(1))
		}
		p.series[id] = one
	}
	return p
}

// Axis returns the unified date axis.
func (p *Prices) Axis() []date.Date { return slices.Clone(p.axis) }

// Price returns the normalized price of an instrument on a given date of the axis.
func (p *Prices) Price(id string, on date.Date) (Money, bool) {
	h, ok := p.series[id]
	if !ok {
		return Money{}, false
	}
	return h.Get(on)
}

// First returns the date of the first known price of an instrument.
func (p *Prices) First(id string) (date.Date, bool) {
	h, ok := p.series[id]
	if !ok {
		return date.Date{}, false
	}
	on, _, ok := h.First()
	return on, ok
}
