package investo

import (
	"context"
	"maps"
	"slices"

	"github.com/etnz/investo/date"
)

// Feed is a provider of historical daily closing prices.
//
// The returned quotes may be empty or short for any instrument; failures on
// individual instruments are not errors.
type Feed interface {
	Fetch(ctx context.Context, ids []string, r date.Range) (Quotes, error)
}

// Market is a local cache of daily closing prices per instrument id.
type Market struct {
	prices map[string]*date.History[Money]
}

// NewMarket returns a new empty market data collection.
func NewMarket() *Market {
	return &Market{prices: make(map[string]*date.History[Money])}
}

// Append records a price, existing price on that day is overwritten.
func (m *Market) Append(id string, on date.Date, price Money) {
	h, ok := m.prices[id]
	if !ok {
		h = new(date.History[Money])
		m.prices[id] = h
	}
	h.Append(on, price)
}

// Merge records all quotes and returns the number of prices added or changed.
func (m *Market) Merge(q Quotes) int {
	n := 0
	for id, points := range q {
		for _, p := range points {
			if !p.Price.IsPositive() {
				continue
			}
			if old, ok := m.Price(id, p.Date); ok && old.Equal(p.Price) {
				continue
			}
			m.Append(id, p.Date, p.Price)
			n++
		}
	}
	return n
}

// Price returns the price recorded on a given day.
func (m *Market) Price(id string, on date.Date) (Money, bool) {
	h, ok := m.prices[id]
	if !ok {
		return Money{}, false
	}
	return h.Get(on)
}

// IDs returns the sorted instrument ids with prices.
func (m *Market) IDs() []string { return slices.Sorted(maps.Keys(m.prices)) }

// First returns the date of the first price of an instrument.
func (m *Market) First(id string) (date.Date, bool) {
	h, ok := m.prices[id]
	if !ok {
		return date.Date{}, false
	}
	on, _, ok := h.First()
	return on, ok
}

// Latest returns the date of the last price of an instrument.
func (m *Market) Latest(id string) (date.Date, bool) {
	h, ok := m.prices[id]
	if !ok {
		return date.Date{}, false
	}
	on, _, ok := h.Latest()
	return on, ok
}

// Quotes returns the recorded prices of the given instruments, all of them if
// no id is given.
func (m *Market) Quotes(ids ...string) Quotes {
	if len(ids) == 0 {
		ids = m.IDs()
	}
	q := make(Quotes, len(ids))
	for _, id := range ids {
		h, ok := m.prices[id]
		if !ok {
			continue
		}
		points := make([]PricePoint, 0, h.Len())
		for on, p := range h.Values() {
			points = append(points, PricePoint{Date: on, Price: p})
		}
		q[id] = points
	}
	return q
}
