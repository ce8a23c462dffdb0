package investo

import "testing"

func TestNewSummary(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", CashID, Deposit, 1000, "2025-01-01"),
		tx("2", "X", Buy, 500, "2025-01-01"),
		tx("3", "X", Sell, 100, "2025-01-02"),
	)
	r := Evaluate(ledger, Quotes{"X": daily("2025-01-01", 10, 12)})
	s := NewSummary(ledger, r.Stats)

	// X: 50 units, sell 100 at 12 leaves 50-8.333.. units worth 500.
	if len(s.Assets) != 1 || s.Assets[0].Instrument != "X" {
		t.Fatalf("Assets = %v want X only", s.Assets)
	}
	if got, want := s.StockValue, M(500); !got.Equal(want) {
		t.Errorf("StockValue = %v want %v", got, want)
	}
	if got, want := s.StockReturn, M(100); !got.Equal(want) {
		t.Errorf("StockReturn = %v want %v", got, want)
	}
	if got, want := s.CashBalance, M(1000); !got.Equal(want) {
		t.Errorf("CashBalance = %v want %v", got, want)
	}
	if got, want := s.NetWorth, M(1500); !got.Equal(want) {
		t.Errorf("NetWorth = %v want %v", got, want)
	}
	if got := s.CashShare(); !got.Equal(Ratio(2.0 / 3)) {
		t.Errorf("CashShare() = %v want 66.67%%", got)
	}
}

func TestMoneyFormat(t *testing.T) {
	testCases := []struct {
		m    Money
		cur  string
		want string
	}{
		{M(1234.567), "USD", "$1,234.57"},
		{M(-5), "USD", "-$5.00"},
		{M(0.1), "EUR", "€0.10"},
	}
	for _, tc := range testCases {
		if got := tc.m.Format(tc.cur); got != tc.want {
			t.Errorf("Format(%v, %s) = %q want %q", tc.m, tc.cur, got, tc.want)
		}
	}
}
