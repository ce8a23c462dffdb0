package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/investo/yahoo"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type searchCmd struct {
	max int
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search Yahoo Finance for a ticker symbol" }
func (*searchCmd) Usage() string {
	return `inv search [-max <n>] <query>

  Searches ticker symbols by name, to be used as instrument ids.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.max, "max", 6, "Maximum number of results")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: a query is required.")
		return subcommands.ExitUsageError
	}
	client := yahoo.New(cfg.Yahoo.BaseURL, "", cfg.Yahoo.Concurrency)
	tickers, err := client.Search(ctx, query, c.max)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Search results for %q", query))
	table := md.TableSet{
		Header: []string{"Symbol", "Name", "Type", "Exchange"},
		Rows:   [][]string{},
	}
	for _, t := range tickers {
		table.Rows = append(table.Rows, []string{t.Symbol, t.Name, t.Type, t.Exchange})
	}
	doc.Table(table)
	printMarkdown(doc.String())
	return subcommands.ExitSuccess
}
