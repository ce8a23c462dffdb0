package investo

import (
	"math"
	"testing"
)

func TestMaxDrawdown(t *testing.T) {
	testCases := []struct {
		name   string
		values []float64
		want   Ratio
	}{
		{"monotonic", []float64{100, 100, 120, 130}, 0},
		{"single dip", []float64{100, 80, 120}, -0.2},
		{"deepest after new peak", []float64{100, 120, 90, 130, 65}, -0.5},
		{"divested", []float64{100, 0, 0}, -1},
		{"starting at zero", []float64{0, 0, 50, 25}, -0.5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			values := make([]Money, 0, len(tc.values))
			for _, v := range tc.values {
				values = append(values, M(v))
			}
			if got := maxDrawdown(values); !got.Equal(tc.want) {
				t.Errorf("maxDrawdown(%v) = %v want %v", tc.values, got, tc.want)
			}
		})
	}
}

func TestTotalReturn(t *testing.T) {
	testCases := []struct {
		final, deposits, withdrawals float64
		want                         Ratio
	}{
		{1500, 1000, 500, 1},
		{900, 1000, 0, -0.1},
		{0, 1000, 1100, 0.1},
		{100, 0, 0, 0}, // no deposits.
	}
	for _, tc := range testCases {
		got := totalReturn(M(tc.final), M(tc.deposits), M(tc.withdrawals))
		if !got.Equal(tc.want) {
			t.Errorf("totalReturn(%v, %v, %v) = %v want %v", tc.final, tc.deposits, tc.withdrawals, got, tc.want)
		}
	}
}

func TestAnnualizedReturn(t *testing.T) {
	testCases := []struct {
		final, deposits, withdrawals float64
		days                         int
		want                         Ratio
	}{
		{1210, 1000, 0, 730, Ratio(math.Pow(1.21, 365.25/730) - 1)},
		{1000, 1000, 0, 365, 0},
		{1500, 1000, 500, 10, Ratio(math.Pow(2, 36.525) - 1)},
		{1100, 1000, 0, 0, 0}, // no elapsed time.
		{1100, 0, 0, 100, 0},  // no deposits.
	}
	for _, tc := range testCases {
		got := annualizedReturn(M(tc.final), M(tc.deposits), M(tc.withdrawals), tc.days)
		if math.Abs(float64(got-tc.want)) > 1e-9*math.Max(1, math.Abs(float64(tc.want))) {
			t.Errorf("annualizedReturn(%v, %v, %v, %d) = %v want %v", tc.final, tc.deposits, tc.withdrawals, tc.days, got, tc.want)
		}
	}
}

func TestComputeStats_Empty(t *testing.T) {
	if got := ComputeStats(&Holdings{}, NewLedger()); len(got) != 0 {
		t.Errorf("ComputeStats() = %v want empty", got)
	}
}
