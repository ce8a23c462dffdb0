// Package investo reconstructs how a basket of holdings would have evolved in
// value from a free-form list of buy, sell, deposit and withdraw events and
// externally supplied daily closing prices.
//
// The core is a deterministic valuation and analytics engine:
//   - Price Series Normalizer: aligns sparse per-instrument quotes onto one
//     date axis and forward-fills gaps (see Normalize).
//   - Transaction Ledger View: the caller-maintained record of events, ordered
//     per instrument by date then by id (see Ledger).
//   - Holdings Simulator: turns the ledger and the normalized prices into a
//     daily value series per instrument and for the total portfolio (see Simulate).
//   - Analytics Calculator: money-weighted return, annualized return and max
//     drawdown per instrument and in aggregate (see ComputeStats).
//
// Evaluate chains them. The engine holds no state between calls, does no I/O
// and never fails: degenerate inputs produce empty or zero-valued outputs and
// the anomalies encountered are reported as Issues.
//
// Around the engine, the package also provides the caller-side pieces used by
// the `inv` command line tool: ledger and market data persistence in JSONL,
// and the Feed interface implemented by price providers.
package investo
