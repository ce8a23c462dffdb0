package investo

import (
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/investo/date"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a transaction id is unknown to the ledger.
	ErrNotFound = errors.New("transaction not found")
	// ErrDuplicateID is returned when adding a transaction whose id is already in the ledger.
	ErrDuplicateID = errors.New("duplicate transaction id")
)

// Ledger is the caller-maintained record of instruments and transactions.
//
// Transactions are kept in insertion order, views are ordered by date then
// by ascending id. A Ledger is not safe for concurrent modification.
type Ledger struct {
	instruments  []Instrument   // in declaration order
	index        map[string]int // instrument position by id
	transactions []Transaction
	ids          map[string]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		instruments:  make([]Instrument, 0),
		index:        make(map[string]int),
		transactions: make([]Transaction, 0),
		ids:          make(map[string]struct{}),
	}
}

// NewID returns a new time-ordered transaction id.
//
// Ids generated in sequence are in ascending order, so that same day
// transactions replay in creation order.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Declare adds or updates an instrument definition.
// An empty color hint gets the next one from the palette.
func (l *Ledger) Declare(inst Instrument) error {
	if inst.ID == "" {
		return errors.New("instrument id is missing")
	}
	if i, ok := l.index[inst.ID]; ok {
		if inst.Color == "" {
			inst.Color = l.instruments[i].Color
		}
		l.instruments[i] = inst
		return nil
	}
	if inst.Color == "" {
		inst.Color = palette[len(l.instruments)%len(palette)]
	}
	l.index[inst.ID] = len(l.instruments)
	l.instruments = append(l.instruments, inst)
	return nil
}

// declare makes sure an instrument exists, defaulting its definition.
func (l *Ledger) declare(id string) {
	if _, ok := l.index[id]; ok {
		return
	}
	inst := Instrument{ID: id, Name: id}
	if id == CashID {
		inst = NewCash()
	}
	l.Declare(inst)
}

// Instrument returns the instrument declared with this id.
func (l *Ledger) Instrument(id string) (Instrument, bool) {
	i, ok := l.index[id]
	if !ok {
		return Instrument{}, false
	}
	return l.instruments[i], true
}

// Instruments returns all instruments in declaration order.
func (l *Ledger) Instruments() []Instrument { return slices.Clone(l.instruments) }

// Synthetic returns the ids of the synthetic instruments.
func (l *Ledger) Synthetic() []string {
	var ids []string
	for _, inst := range l.instruments {
		if inst.Synthetic {
			ids = append(ids, inst.ID)
		}
	}
	return ids
}

// Add validates and appends transactions to the ledger.
//
// Transactions without an id get a new one. Nothing is added if any
// transaction is invalid.
func (l *Ledger) Add(txs ...Transaction) error {
	txs = slices.Clone(txs)
	seen := make(map[string]struct{}, len(txs))
	for i := range txs {
		if txs[i].ID == "" {
			txs[i].ID = NewID()
		}
		if err := txs[i].Validate(); err != nil {
			return err
		}
		id := txs[i].ID
		if _, exists := l.ids[id]; exists {
			return fmt.Errorf("cannot add transaction %q: %w", id, ErrDuplicateID)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("cannot add transaction %q: %w", id, ErrDuplicateID)
		}
		seen[id] = struct{}{}
	}
	for _, tx := range txs {
		l.declare(tx.Instrument)
		l.ids[tx.ID] = struct{}{}
		l.transactions = append(l.transactions, tx)
	}
	return nil
}

// Get returns the transaction with the given id.
func (l *Ledger) Get(id string) (Transaction, error) {
	i := l.find(id)
	if i < 0 {
		return Transaction{}, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	return l.transactions[i], nil
}

func (l *Ledger) find(id string) int {
	return slices.IndexFunc(l.transactions, func(tx Transaction) bool { return tx.ID == id })
}

// Replace substitutes the transaction with the same id.
func (l *Ledger) Replace(tx Transaction) error {
	i := l.find(tx.ID)
	if i < 0 {
		return fmt.Errorf("cannot replace transaction %q: %w", tx.ID, ErrNotFound)
	}
	if err := tx.Validate(); err != nil {
		return err
	}
	l.declare(tx.Instrument)
	l.transactions[i] = tx
	return nil
}

// Delete removes the transaction with the given id and returns it, so that
// the caller can undo the deletion by adding it back.
func (l *Ledger) Delete(id string) (Transaction, error) {
	i := l.find(id)
	if i < 0 {
		return Transaction{}, fmt.Errorf("cannot delete transaction %q: %w", id, ErrNotFound)
	}
	tx := l.transactions[i]
	l.transactions = slices.Delete(l.transactions, i, i+1)
	delete(l.ids, id)
	return tx, nil
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns all transactions ordered by date then by id.
func (l *Ledger) Transactions() []Transaction {
	txs := slices.Clone(l.transactions)
	slices.SortStableFunc(txs, less)
	return txs
}

// ByInstrument groups transactions per instrument, each group ordered by
// date then by ascending id.
func (l *Ledger) ByInstrument() map[string][]Transaction {
	groups := make(map[string][]Transaction)
	for _, tx := range l.Transactions() {
		groups[tx.Instrument] = append(groups[tx.Instrument], tx)
	}
	return groups
}

// Dates returns the sorted, unique dates of all transactions.
func (l *Ledger) Dates() []date.Date {
	days := make([]date.Date, 0, len(l.transactions))
	for _, tx := range l.transactions {
		days = append(days, tx.Date)
	}
	return date.Union(days)
}

// Range returns the range of dates covered by the transactions.
func (l *Ledger) Range() (r date.Range) {
	for _, tx := range l.transactions {
		r = r.Extend(tx.Date)
	}
	return r
}
