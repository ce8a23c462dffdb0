package investo

import (
	"github.com/etnz/investo/date"
	"golang.org/x/sync/errgroup"
)

// HoldingsPoint is the value of each instrument and of the total portfolio on a date.
type HoldingsPoint struct {
	Date   date.Date
	Values map[string]Money // per instrument id, only for active and priced instruments.
	Total  Money            // sum of Values.
}

// Fill is how a transaction was applied to its position.
type Fill struct {
	Price  Money // effective price, the override price when set.
	Before Units // units held just before the transaction.
}

// Position is the simulated history of a single instrument.
type Position struct {
	Instrument  string
	Units       date.History[Units] // cumulative units step function.
	Values      date.History[Money] // daily market value, cent rounded.
	Deposits    Money               // sum of applied buy and deposit amounts.
	Withdrawals Money               // sum of applied sell and withdraw amounts.
	Start       date.Date           // first transaction date, the position is active from there.
	Fills       map[string]Fill     // per applied transaction id.
	Issues      []Issue

	raw date.History[Money] // unrounded values, summed into the total.
}

// UnitsOn returns the units held at the end of a day.
func (p *Position) UnitsOn(on date.Date) Units {
	u, _ := p.Units.ValueAsOf(on)
	return u
}

// Holdings is the output of the Holdings Simulator.
type Holdings struct {
	Points    []HoldingsPoint
	Positions []*Position // in ledger declaration order.
}

// Position returns the position of an instrument.
func (h *Holdings) Position(id string) (*Position, bool) {
	for _, p := range h.Positions {
		if p.Instrument == id {
			return p, true
		}
	}
	return nil, false
}

// ValueOn returns the value of an instrument at the end of a day, using the
// last known value on or before it.
func (h *Holdings) ValueOn(id string, on date.Date) (Money, bool) {
	p, ok := h.Position(id)
	if !ok {
		return Money{}, false
	}
	return p.Values.ValueAsOf(on)
}

// Fill returns how a transaction of an instrument was applied, false when
// it was skipped.
func (h *Holdings) Fill(id, txID string) (Fill, bool) {
	p, ok := h.Position(id)
	if !ok {
		return Fill{}, false
	}
	f, ok := p.Fills[txID]
	return f, ok
}

// simulate replays an instrument's transactions, sorted by date then id, and values the position on every date of the axis.
func simulate(prices *Prices, id string, txs []Transaction) *Position {
	pos := &Position{Instrument: id, Start: txs[0].Date, Fills: make(map[string]Fill)}

	var units Units
	for _, tx := range txs {
		price, ok := tx.OverridePrice()
		if !ok {
			price, ok = prices.Price(id, tx.Date)
		}
		if !ok {
			pos.Issues = append(pos.Issues, Issue{Kind: MissingPrice, Instrument: id, Transaction: tx.ID, Date: tx.Date})
			continue
		}
		pos.Fills[tx.ID] = Fill{Price: price, Before: units}
		delta := tx.Amount.DivPrice(price)
		if tx.Kind.Inflow() {
			units = units.Add(delta)
			pos.Deposits = pos.Deposits.Add(tx.Amount)
		} else {
			if delta.GreaterThan(units) {
				pos.Issues = append(pos.Issues, Issue{Kind: Oversell, Instrument: id, Transaction: tx.ID, Date: tx.Date})
			}
			units = units.ClampedSub(delta)
			pos.Withdrawals = pos.Withdrawals.Add(tx.Amount)
		}
		pos.Units.Append(tx.Date, units)
	}

	for _, on := range prices.axis {
		if on.Before(pos.Start) {
			continue
		}
		price, ok := prices.Price(id, on)
		if !ok {
			continue
		}
		v := price.Mul(pos.UnitsOn(on))
		pos.raw.Append(on, v)
		pos.Values.Append(on, v.Round())
	}
	if pos.Values.Len() == 0 {
		pos.Issues = append(pos.Issues, Issue{Kind: Unpriced, Instrument: id, Date: pos.Start})
	}
	return pos
}

// Simulate converts the ledger and normalized prices into a daily value
// series per instrument and for the total portfolio.
//
// Instruments are simulated concurrently. Dates where no active instrument
// has a value are omitted, so the series never starts with an empty prefix.
func Simulate(prices *Prices, ledger *Ledger) *Holdings {
	groups := ledger.ByInstrument()
	var ids []string
	for _, inst := range ledger.Instruments() {
		if len(groups[inst.ID]) > 0 {
			ids = append(ids, inst.ID)
		}
	}

	positions := make([]*Position, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			positions[i] = simulate(prices, id, groups[id])
			return nil
		})
	}
	g.Wait() // simulate never fails.

	h := &Holdings{Positions: positions}
	for _, on := range prices.axis {
		point := HoldingsPoint{Date: on, Values: make(map[string]Money)}
		var total Money
		for _, pos := range positions {
			if on.Before(pos.Start) {
				continue
			}
			v, ok := pos.raw.Get(on)
			if !ok {
				continue
			}
			total = total.Add(v)
			point.Values[pos.Instrument] = v.Round()
		}
		if len(point.Values) == 0 {
			continue
		}
		point.Total = total.Round()
		h.Points = append(h.Points, point)
	}
	return h
}
