package investo

import (
	"testing"
)

func TestEvaluate_Empty(t *testing.T) {
	r := Evaluate(NewLedger(), Quotes{"X": daily("2025-01-01", 10, 11)})
	if len(r.Holdings.Points) != 0 {
		t.Errorf("Holdings = %v want empty", r.Holdings.Points)
	}
	if len(r.Stats) != 0 {
		t.Errorf("Stats = %v want empty", r.Stats)
	}
	if r.Stats == nil {
		t.Errorf("Stats must be an empty list, not nil")
	}
}

// Buy $1000 at $100, no price change for 30 days.
func TestEvaluate_ScenarioA(t *testing.T) {
	ledger := newTestLedger(t, tx("1", "X", Buy, 1000, "2025-01-01"))
	r := Evaluate(ledger, Quotes{"X": constant("2025-01-01", "2025-01-31", 100)})

	if got, want := len(r.Holdings.Points), 31; got != want {
		t.Fatalf("len(Points) = %d want %d", got, want)
	}
	if got, want := pointOn(t, r, "2025-01-31").Values["X"], M(1000); !got.Equal(want) {
		t.Errorf("value(day30) = %v want %v", got, want)
	}
	for _, id := range []string{"", "X"} {
		s := statOf(t, r, id)
		if !s.TotalReturn.Equal(0) {
			t.Errorf("%q TotalReturn = %v want 0", id, s.TotalReturn)
		}
		if !s.AnnualizedReturn.Equal(0) {
			t.Errorf("%q AnnualizedReturn = %v want 0", id, s.AnnualizedReturn)
		}
		if s.MaxDrawdown != 0 {
			t.Errorf("%q MaxDrawdown = %v want 0", id, s.MaxDrawdown)
		}
	}
}

// Buy $1000 at $100, price doubles by day 10, sell $500 on day 10.
func TestEvaluate_ScenarioB(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", "X", Buy, 1000, "2025-01-01"),
		tx("2", "X", Sell, 500, "2025-01-11"),
	)
	quotes := Quotes{"X": {
		{Date: D("2025-01-01"), Price: M(100)},
		{Date: D("2025-01-06"), Price: M(150)},
		{Date: D("2025-01-11"), Price: M(200)},
	}}
	r := Evaluate(ledger, quotes)

	if got, want := pointOn(t, r, "2025-01-11").Values["X"], M(1500); !got.Equal(want) {
		t.Errorf("value(day10) = %v want %v", got, want)
	}
	pos, _ := r.Holdings.Position("X")
	if got, want := pos.UnitsOn(D("2025-01-11")), U(7.5); !got.Equal(want) {
		t.Errorf("units(day10) = %v want %v", got, want)
	}

	s := statOf(t, r, "X")
	if !s.Deposits.Equal(M(1000)) || !s.Withdrawals.Equal(M(500)) {
		t.Errorf("Deposits, Withdrawals = %v, %v want 1000, 500", s.Deposits, s.Withdrawals)
	}
	if !s.TotalReturn.Equal(1) {
		t.Errorf("TotalReturn = %v want 100%%", s.TotalReturn)
	}
	if total := statOf(t, r, ""); !total.TotalReturn.Equal(1) {
		t.Errorf("Total TotalReturn = %v want 100%%", total.TotalReturn)
	}
}

// Two instruments with disjoint trading calendars bought on a Friday.
func TestEvaluate_ScenarioC(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", "WEEKDAY", Buy, 100, "2025-01-03"),
		tx("2", "EVERYDAY", Buy, 200, "2025-01-03"),
	)
	quotes := Quotes{
		"WEEKDAY": {
			{Date: D("2025-01-03"), Price: M(10)}, // Friday
			{Date: D("2025-01-06"), Price: M(11)}, // Monday
		},
		"EVERYDAY": daily("2025-01-03", 20, 20, 22, 22),
	}
	r := Evaluate(ledger, quotes)

	if got, want := len(r.Holdings.Points), 4; got != want {
		t.Fatalf("len(Points) = %d want %d", got, want)
	}
	sunday := pointOn(t, r, "2025-01-05")
	if got, want := sunday.Values["WEEKDAY"], M(100); !got.Equal(want) {
		t.Errorf("WEEKDAY on Sunday = %v want %v", got, want)
	}
	if got, want := sunday.Total, M(320); !got.Equal(want) {
		t.Errorf("Total on Sunday = %v want %v", got, want)
	}
	if got, want := pointOn(t, r, "2025-01-06").Total, M(330); !got.Equal(want) {
		t.Errorf("Total on Monday = %v want %v", got, want)
	}
}

// Selling more than owned clamps to zero.
func TestEvaluate_ScenarioD(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", "X", Buy, 100, "2025-01-01"),
		tx("2", "X", Sell, 10000, "2025-01-02"),
	)
	r := Evaluate(ledger, Quotes{"X": daily("2025-01-01", 10, 10, 10)})

	for _, on := range []string{"2025-01-02", "2025-01-03"} {
		if got := pointOn(t, r, on).Values["X"]; !got.IsZero() {
			t.Errorf("value(%s) = %v want 0", on, got)
		}
	}
	pos, _ := r.Holdings.Position("X")
	if got := pos.UnitsOn(D("2025-01-03")); !got.IsZero() {
		t.Errorf("units = %v want 0", got)
	}
	if len(r.Issues) != 1 || r.Issues[0].Kind != Oversell || r.Issues[0].Transaction != "2" {
		t.Errorf("Issues = %v want one oversell on transaction 2", r.Issues)
	}
}

func TestEvaluate_FullDivestment(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", "X", Buy, 1000, "2025-01-01"),
		tx("2", "X", Sell, 1500, "2025-01-05"),
		tx("3", "X", Buy, 300, "2025-01-08"),
	)
	r := Evaluate(ledger, Quotes{"X": daily("2025-01-01", 100, 110, 120, 130, 150, 150, 150, 150, 160)})

	for _, on := range []string{"2025-01-05", "2025-01-06", "2025-01-07"} {
		if got := pointOn(t, r, on).Values["X"]; !got.IsZero() {
			t.Errorf("value(%s) = %v want 0", on, got)
		}
	}
	if got, want := pointOn(t, r, "2025-01-08").Values["X"], M(300); !got.Equal(want) {
		t.Errorf("value after rebuy = %v want %v", got, want)
	}
	if got, want := pointOn(t, r, "2025-01-09").Values["X"], M(320); !got.Equal(want) {
		t.Errorf("value after rebuy = %v want %v", got, want)
	}
	if len(r.Issues) != 0 {
		t.Errorf("Issues = %v want none", r.Issues)
	}
}

func TestEvaluate_UnitsNeverNegative(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", "X", Sell, 50, "2025-01-01"),
		tx("2", "X", Buy, 100, "2025-01-02"),
		tx("3", "X", Sell, 70, "2025-01-03"),
		tx("4", "X", Withdraw, 70, "2025-01-03"),
		tx("5", "X", Deposit, 10, "2025-01-04"),
	)
	r := Evaluate(ledger, Quotes{"X": daily("2025-01-01", 10, 12, 8, 9)})
	for _, pos := range r.Holdings.Positions {
		for on, u := range pos.Units.Values() {
			if u.IsNegative() {
				t.Errorf("units(%s) = %v is negative", on, u)
			}
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", "X", Buy, 1000, "2025-01-01"),
		tx("2", "Y", Buy, 333.33, "2025-01-02"),
		tx("3", CashID, Deposit, 500, "2025-01-02"),
		tx("4", "X", Sell, 123.45, "2025-01-04"),
	)
	quotes := Quotes{
		"X": daily("2025-01-01", 3, 3.1, 2.9, 3.3, 3.7),
		"Y": daily("2025-01-02", 7, 7.7, 6.1),
	}
	first := dump(Evaluate(ledger, quotes))
	for i := 0; i < 5; i++ {
		if got := dump(Evaluate(ledger, quotes)); got != first {
			t.Fatalf("Evaluate() is not deterministic:\n%s\nvs\n%s", got, first)
		}
	}
}

func TestEvaluate_ConstantPriceBuyAndHold(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", "X", Buy, 1000, "2025-01-01"),
		tx("2", "X", Buy, 500, "2025-02-01"),
	)
	r := Evaluate(ledger, Quotes{"X": constant("2025-01-01", "2025-06-30", 42)})
	for _, s := range r.Stats {
		if !s.TotalReturn.Equal(0) || s.MaxDrawdown != 0 {
			t.Errorf("%q TotalReturn, MaxDrawdown = %v, %v want 0, 0", s.Name, s.TotalReturn, s.MaxDrawdown)
		}
	}
}

func TestEvaluate_SameDayTieBreakByID(t *testing.T) {
	// inserted buy first, but the sell has the smallest id so it replays first.
	ledger := newTestLedger(t,
		tx("b", "X", Buy, 100, "2025-01-01"),
		tx("a", "X", Sell, 100, "2025-01-01"),
	)
	r := Evaluate(ledger, Quotes{"X": daily("2025-01-01", 10)})
	pos, _ := r.Holdings.Position("X")
	if got, want := pos.UnitsOn(D("2025-01-01")), U(10); !got.Equal(want) {
		t.Errorf("units = %v want %v", got, want)
	}
}

func TestEvaluate_OverridePrice(t *testing.T) {
	buy := tx("1", "X", Buy, 1000, "2025-01-01")
	buy.Price = M(50)
	r := Evaluate(newTestLedger(t, buy), Quotes{"X": daily("2025-01-01", 100, 100)})
	if got, want := pointOn(t, r, "2025-01-02").Values["X"], M(2000); !got.Equal(want) {
		t.Errorf("value = %v want %v", got, want)
	}
}

func TestHoldings_Fill(t *testing.T) {
	sell := tx("3", "X", Sell, 100, "2025-01-02")
	sell.Price = M(40)
	ledger := newTestLedger(t,
		tx("1", "X", Buy, 1000, "2024-12-31"), // before the first quote.
		tx("2", "X", Buy, 1000, "2025-01-01"),
		sell,
	)
	r := Evaluate(ledger, Quotes{"X": daily("2025-01-01", 10, 20)})

	testCases := []struct {
		id     string
		ok     bool
		price  Money
		before Units
	}{
		{id: "1", ok: false},
		{id: "2", ok: true, price: M(10), before: U(0)},
		{id: "3", ok: true, price: M(40), before: U(100)},
	}
	for _, tc := range testCases {
		got, ok := r.Holdings.Fill("X", tc.id)
		if ok != tc.ok {
			t.Errorf("Fill(%s) ok = %v want %v", tc.id, ok, tc.ok)
			continue
		}
		if ok && (!got.Price.Equal(tc.price) || !got.Before.Equal(tc.before)) {
			t.Errorf("Fill(%s) = %v, %v want %v, %v", tc.id, got.Price, got.Before, tc.price, tc.before)
		}
	}
}

func TestEvaluate_MissingPriceSkipsTransaction(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", "X", Buy, 1000, "2025-01-01"), // before the first quote.
		tx("2", "X", Buy, 100, "2025-01-03"),
	)
	r := Evaluate(ledger, Quotes{"X": daily("2025-01-03", 10, 20)})

	if got, want := len(r.Holdings.Points), 2; got != want {
		t.Fatalf("len(Points) = %d want %d (no empty prefix)", got, want)
	}
	if got, want := pointOn(t, r, "2025-01-04").Values["X"], M(200); !got.Equal(want) {
		t.Errorf("value = %v want %v", got, want)
	}
	if s := statOf(t, r, "X"); !s.Deposits.Equal(M(100)) {
		t.Errorf("Deposits = %v want 100", s.Deposits)
	}
	if len(r.Issues) != 1 || r.Issues[0].Kind != MissingPrice {
		t.Errorf("Issues = %v want one missing price", r.Issues)
	}
}

func TestEvaluate_UnpricedInstrumentExcluded(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", "X", Buy, 1000, "2025-01-01"),
		tx("2", "GHOST", Buy, 1000, "2025-01-01"),
	)
	r := Evaluate(ledger, Quotes{"X": daily("2025-01-01", 10, 11), "GHOST": nil})
	if got, want := len(r.Stats), 2; got != want {
		t.Fatalf("len(Stats) = %d want %d", got, want)
	}
	if total := statOf(t, r, ""); !total.Deposits.Equal(M(1000)) {
		t.Errorf("total Deposits = %v want 1000", total.Deposits)
	}
	if _, ok := pointOn(t, r, "2025-01-01").Values["GHOST"]; ok {
		t.Errorf("GHOST must not have values")
	}
}

func TestEvaluate_Cash(t *testing.T) {
	ledger := newTestLedger(t,
		tx("1", CashID, Deposit, 500, "2025-01-01"),
		tx("2", CashID, Withdraw, 200, "2025-01-10"),
		tx("3", "X", Buy, 100, "2025-01-05"),
	)
	r := Evaluate(ledger, Quotes{"X": daily("2025-01-05", 10, 10)})

	// cash is valued on its own dates, before any quote exists.
	if got, want := pointOn(t, r, "2025-01-01").Total, M(500); !got.Equal(want) {
		t.Errorf("Total(01-01) = %v want %v", got, want)
	}
	if got, want := pointOn(t, r, "2025-01-10").Total, M(400); !got.Equal(want) {
		t.Errorf("Total(01-10) = %v want %v", got, want)
	}
	if s := statOf(t, r, CashID); !s.FinalValue.Equal(M(300)) || !s.TotalReturn.Equal(0) {
		t.Errorf("cash FinalValue, TotalReturn = %v, %v want 300, 0", s.FinalValue, s.TotalReturn)
	}
}

func TestEvaluate_StatsOrderAndOwned(t *testing.T) {
	ledger := NewLedger()
	ledger.Declare(Instrument{ID: "B", Name: "Bee"})
	ledger.Declare(Instrument{ID: "A", Name: "Ay"})
	if err := ledger.Add(
		tx("1", "A", Buy, 100, "2025-01-01"),
		tx("2", "B", Buy, 100, "2025-01-01"),
		tx("3", "B", Sell, 100, "2025-01-02"),
	); err != nil {
		t.Fatal(err)
	}
	r := Evaluate(ledger, Quotes{"A": daily("2025-01-01", 1, 1), "B": daily("2025-01-01", 2, 2)})

	var got []string
	for _, s := range r.Stats {
		got = append(got, s.Name)
	}
	want := []string{TotalKey, "Bee", "Ay"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("Stats names = %v want %v", got, want)
	}

	owned := Owned(r.Stats)
	if len(owned) != 2 || !owned[0].IsTotal() || owned[1].Instrument != "A" {
		t.Errorf("Owned() = %v want total and A", owned)
	}
}
