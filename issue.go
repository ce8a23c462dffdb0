package investo

import (
	"fmt"

	"github.com/etnz/investo/date"
)

// IssueKind classifies the non-fatal anomalies met while evaluating a ledger.
type IssueKind string

const (
	// MissingPrice: a transaction could not be valued, it contributes nothing to units.
	MissingPrice IssueKind = "missing-price"
	// Oversell: a sell or withdraw exceeded the units held, units were clamped to zero.
	Oversell IssueKind = "oversell"
	// Unpriced: an instrument has transactions but never reaches a priced date.
	Unpriced IssueKind = "unpriced"
)

// Issue records an anomaly resolved by omission or clamping.
type Issue struct {
	Kind        IssueKind
	Instrument  string
	Transaction string // transaction id, if any.
	Date        date.Date
}

func (i Issue) String() string {
	switch i.Kind {
	case MissingPrice:
		return fmt.Sprintf("%s: no price for %s on %s, transaction %q skipped", i.Kind, i.Instrument, i.Date, i.Transaction)
	case Oversell:
		return fmt.Sprintf("%s: transaction %q on %s sells more %s than held, position closed", i.Kind, i.Transaction, i.Date, i.Instrument)
	default:
		return fmt.Sprintf("%s: %s has no price on any date", i.Kind, i.Instrument)
	}
}
