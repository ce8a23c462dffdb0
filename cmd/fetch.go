package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/etnz/investo"
	"github.com/etnz/investo/date"
	"github.com/etnz/investo/yahoo"
	"github.com/google/subcommands"
)

// lookback is the number of days fetched before the first transaction, so
// that a transaction on a non trading day has a previous close.
const lookback = 7

type fetchCmd struct {
	from      string
	to        string
	inception bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches daily closing prices from Yahoo Finance" }
func (*fetchCmd) Usage() string {
	return `inv fetch [-from <date>] [-to <date>] [-inception]

Fetches daily closing prices of every instrument in the ledger, synthetic
accounts excepted, and merges them into the market data folder.

By default, prices are fetched from the day after the last known price, or
from the first transaction of the instrument when there is none or when
that transaction is older than the first known price.
The -inception flag ignores the last known price and refreshes everything.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Fetch prices from this date for all instruments")
	f.StringVar(&c.to, "to", date.Today().String(), "Fetch prices up to this date")
	f.BoolVar(&c.inception, "inception", false, "Force fetching data from the first transaction date")
}

// requests groups instrument ids by the date to fetch them from.
func (c *fetchCmd) requests(ledger *investo.Ledger, market *investo.Market, to date.Date) (map[date.Date][]string, error) {
	var from date.Date
	if c.from != "" {
		var err error
		if from, err = date.Parse(c.from); err != nil {
			return nil, fmt.Errorf("invalid -from date: %w", err)
		}
	}
	groups := ledger.ByInstrument()
	requests := make(map[date.Date][]string)
	for _, inst := range ledger.Instruments() {
		txs := groups[inst.ID]
		if inst.Synthetic || len(txs) == 0 {
			continue
		}
		start := from
		if start.IsZero() {
			start = txs[0].Date.Add(-lookback)
			if !c.inception && covered(market, inst.ID, txs[0].Date) {
				if latest, _ := market.Latest(inst.ID); !latest.Before(start) {
					start = latest.Add(1)
				}
			}
		}
		if start.After(to) {
			continue
		}
		requests[start] = append(requests[start], inst.ID)
	}
	return requests, nil
}

// covered reports whether the market has prices for id since on at least.
// A transaction backdated before the first known price is not covered.
func covered(market *investo.Market, id string, on date.Date) bool {
	first, ok := market.First(id)
	return ok && !first.After(on)
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	to, err := date.Parse(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -to date: %v\n", err)
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	market, err := DecodeMarket()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market data: %v\n", err)
		return subcommands.ExitFailure
	}
	requests, err := c.requests(ledger, market, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	feed := yahoo.New(cfg.Yahoo.BaseURL, cfg.Yahoo.CacheDir, cfg.Yahoo.Concurrency)
	count, instruments := 0, 0
	for _, from := range slices.SortedFunc(maps.Keys(requests), date.Date.Compare) {
		ids := requests[from]
		quotes, err := feed.Fetch(ctx, ids, date.Range{From: from, To: to})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, id := range ids {
			if len(quotes[id]) == 0 {
				fmt.Fprintf(os.Stderr, "Warning: no prices for %s since %s\n", id, from)
			}
		}
		count += market.Merge(quotes)
		instruments += len(ids)
	}

	if err := EncodeMarket(market); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving market data: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Fetched %d new prices for %d instruments\n", count, instruments)
	return subcommands.ExitSuccess
}
