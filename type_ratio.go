package investo

import "fmt"

// Ratio is a fraction, 1.0 is 100%.
type Ratio float64

// Percent returns the ratio expressed in percent.
func (r Ratio) Percent() float64 { return float64(r) * 100 }

func (r Ratio) Equal(q Ratio) bool {
	// it has to be compared with some precision
	const precision = 0.000001
	diff := r - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (r Ratio) String() string {
	return fmt.Sprintf("%.2f%%", r.Percent())
}

func (r Ratio) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", r.Percent())
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
