package investo

// Summary is the numeric digest of a portfolio handed to insight generators.
// It never contains the raw series.
type Summary struct {
	Assets []Stat // per instrument stats, synthetic accounts excluded.

	NetWorth      Money // total portfolio value.
	StockValue    Money // value of non synthetic instruments.
	StockInvested Money
	StockSold     Money
	StockReturn   Money // money-weighted gain of non synthetic instruments.
	CashBalance   Money // value of synthetic accounts.
	CashDeposited Money
	CashWithdrawn Money
}

// NewSummary digests stats, splitting synthetic accounts from instruments.
func NewSummary(ledger *Ledger, stats []Stat) Summary {
	var s Summary
	for _, st := range stats {
		if st.IsTotal() {
			s.NetWorth = st.FinalValue
			continue
		}
		if inst, _ := ledger.Instrument(st.Instrument); inst.Synthetic {
			s.CashBalance = s.CashBalance.Add(st.FinalValue)
			s.CashDeposited = s.CashDeposited.Add(st.Deposits)
			s.CashWithdrawn = s.CashWithdrawn.Add(st.Withdrawals)
			continue
		}
		s.Assets = append(s.Assets, st)
		s.StockValue = s.StockValue.Add(st.FinalValue)
		s.StockInvested = s.StockInvested.Add(st.Deposits)
		s.StockSold = s.StockSold.Add(st.Withdrawals)
		s.StockReturn = s.StockReturn.Add(st.Gain())
	}
	return s
}

// CashShare returns the fraction of the net worth held in synthetic accounts.
func (s Summary) CashShare() Ratio {
	if !s.NetWorth.IsPositive() {
		return 0
	}
	return Ratio(s.CashBalance.Ratio(s.NetWorth))
}
