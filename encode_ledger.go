package investo

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/investo/date"
)

// cmdDeclare is the command of instrument declaration lines.
const cmdDeclare = "declare"

// jline is the union of all the fields a ledger line can have.
type jline struct {
	Command    string    `json:"command"`
	ID         string    `json:"id"`
	Date       date.Date `json:"date"`
	Instrument string    `json:"instrument"`
	Amount     Money     `json:"amount"`
	Price      Money     `json:"price"`
	Memo       string    `json:"memo"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	Synthetic  bool      `json:"synthetic"`
}

// DecodeLedger decodes a ledger from a stream of JSONL data.
//
// Each line is either an instrument declaration or a transaction. Every
// transaction is validated.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue // Skip empty lines
		}
		var jl jline
		if err := json.Unmarshal(line, &jl); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", n, string(line), err)
		}
		if jl.Command == cmdDeclare {
			inst := Instrument{ID: jl.Instrument, Name: jl.Name, Color: jl.Color, Synthetic: jl.Synthetic}
			if err := ledger.Declare(inst); err != nil {
				return nil, fmt.Errorf("format error on line %d: %w", n, err)
			}
			continue
		}
		kind, err := ParseKind(jl.Command)
		if err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", n, err)
		}
		tx := Transaction{
			ID:         jl.ID,
			Instrument: jl.Instrument,
			Kind:       kind,
			Amount:     jl.Amount,
			Date:       jl.Date,
			Price:      jl.Price,
			Memo:       jl.Memo,
		}
		if err := ledger.Add(tx); err != nil {
			return nil, fmt.Errorf("on line %d: %w", n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read ledger: %w", err)
	}
	return ledger, nil
}

// encodeDeclaration writes a single instrument declaration line.
func encodeDeclaration(w io.Writer, inst Instrument) error {
	var jw jsonObjectWriter
	jw.Append("command", cmdDeclare)
	jw.Append("instrument", inst.ID)
	jw.Optional("name", inst.Name)
	jw.Optional("color", inst.Color)
	jw.Optional("synthetic", inst.Synthetic)
	b, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// EncodeLedger writes the ledger in its canonical form: declarations first,
// in declaration order, then transactions ordered by date and id.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, inst := range ledger.Instruments() {
		if err := encodeDeclaration(w, inst); err != nil {
			return fmt.Errorf("persist error: cannot write instrument %q: %w", inst.ID, err)
		}
	}
	for _, tx := range ledger.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTransaction writes a single transaction line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("persist error: cannot marshal transaction %q: %w", tx.ID, err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("persist error: cannot write transaction %q: %w", tx.ID, err)
	}
	return nil
}
