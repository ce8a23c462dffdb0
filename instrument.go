package investo

// CashID is the reserved id of the synthetic cash account.
const CashID = "CASH"

// TotalKey is the key of the aggregate series in charting outputs.
const TotalKey = "Total Portfolio"

// palette is the sequence of color hints given to instruments in declaration order.
var palette = []string{
	"#3b82f6", "#8b5cf6", "#10b981", "#f59e0b",
	"#ef4444", "#06b6d4", "#ec4899", "#84cc16",
}

// cashColor is the color hint of the cash account.
const cashColor = "#64748b"

// totalColor is the color hint of the total portfolio.
const totalColor = "#1e293b"

// Instrument is a tradable asset (ticker) or a synthetic account priced at 1.
//
// Identity is the ID.
type Instrument struct {
	ID        string // ticker symbol or CashID.
	Name      string // display name.
	Color     string // color hint for charts.
	Synthetic bool   // true for accounts with a constant price of 1.
}

// NewCash returns the synthetic cash instrument.
func NewCash() Instrument {
	return Instrument{ID: CashID, Name: "Cash", Color: cashColor, Synthetic: true}
}

// DisplayName returns the name or the id when there is no name.
func (i Instrument) DisplayName() string {
	if i.Name == "" {
		return i.ID
	}
	return i.Name
}
