package investo

import "github.com/shopspring/decimal"

// Units is a fractional unit count of an instrument.
type Units struct {
	value decimal.Decimal
}

// U returns Units from a numeric value.
func U[T float64 | int | int64 | decimal.Decimal](value T) Units {
	return Units{value: newDecimal(value)}
}

func (u Units) Equal(v Units) bool       { return u.value.Equal(v.value) }
func (u Units) LessThan(v Units) bool    { return u.value.LessThan(v.value) }
func (u Units) GreaterThan(v Units) bool { return u.value.GreaterThan(v.value) }
func (u Units) Add(v Units) Units        { return Units{value: u.value.Add(v.value)} }
func (u Units) Sub(v Units) Units        { return Units{value: u.value.Sub(v.value)} }
func (u Units) IsZero() bool             { return u.value.IsZero() }
func (u Units) IsPositive() bool         { return u.value.IsPositive() }
func (u Units) IsNegative() bool         { return u.value.IsNegative() }
func (u Units) String() string           { return u.value.String() }

// ClampedSub returns u - v, or zero units if v exceeds u.
func (u Units) ClampedSub(v Units) Units {
	if v.value.GreaterThan(u.value) {
		return Units{}
	}
	return u.Sub(v)
}

func (u Units) MarshalJSON() ([]byte, error) { return []byte(u.value.String()), nil }
func (u *Units) UnmarshalJSON(b []byte) error {
	return u.value.UnmarshalJSON(b)
}
