package investo

// Result is the output of an evaluation.
type Result struct {
	Holdings *Holdings
	Stats    []Stat
	Issues   []Issue
}

// Evaluate runs the whole engine: it normalizes the quotes on the ledger's
// dates, simulates every instrument and computes the stats.
//
// Evaluate is a pure function of its inputs: it keeps no state and
// identical inputs produce identical results.
func Evaluate(ledger *Ledger, quotes Quotes) Result {
	prices := Normalize(quotes, ledger.Dates(), ledger.Synthetic()...)
	h := Simulate(prices, ledger)
	var issues []Issue
	for _, pos := range h.Positions {
		issues = append(issues, pos.Issues...)
	}
	return Result{
		Holdings: h,
		Stats:    ComputeStats(h, ledger),
		Issues:   issues,
	}
}
