package investo

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// centDigits is the precision of every currency output of the engine.
const centDigits = 2

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value in the portfolio currency.
//
// The engine is single currency: the currency code is only needed to format
// values for display, see Format.
type Money struct {
	value decimal.Decimal
}

// M returns Money from a numeric value.
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal string like "1234.56".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }

// Mul returns the value of u units priced at m.
func (m Money) Mul(u Units) Money { return Money{value: m.value.Mul(u.value)} }

// MulRatio returns m scaled by r.
func (m Money) MulRatio(r float64) Money { return Money{value: m.value.Mul(decimal.NewFromFloat(r))} }

// DivPrice returns the number of units that m buys at price p.
func (m Money) DivPrice(p Money) Units { return Units{value: m.value.Div(p.value)} }

// Ratio returns m/n as a float, n must not be zero.
func (m Money) Ratio(n Money) float64 { return m.value.Div(n.value).InexactFloat64() }

// Round returns m rounded to the cent.
func (m Money) Round() Money { return Money{value: m.value.Round(centDigits)} }

// Float returns an approximate float representation, for display and ratios only.
func (m Money) Float() float64 { return m.value.InexactFloat64() }

// Decimal returns the exact decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// String returns the value with exactly two decimals.
func (m Money) String() string { return m.value.StringFixed(centDigits) }

// Format returns the value formatted in the given currency, e.g. "$1,234.56".
func (m Money) Format(currency string) string {
	cur := money.New(0, currency).Currency()
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString returns the value formatted in currency with an explicit sign.
// 0 is represented as a "-"
func (m Money) SignedString(currency string) string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.Format(currency)
	}
	return m.Format(currency)
}

// MarshalJSON writes the exact value as a json number.
func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.value.String()), nil }

// UnmarshalJSON reads a json number or a quoted decimal.
func (m *Money) UnmarshalJSON(b []byte) error { return m.value.UnmarshalJSON(b) }
