package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investo"
	"github.com/etnz/investo/insight"
	"github.com/etnz/investo/renderer"
	"github.com/google/subcommands"
)

type insightsCmd struct {
	model string
}

func (*insightsCmd) Name() string     { return "insights" }
func (*insightsCmd) Synopsis() string { return "ask Gemini for a short review of the portfolio" }
func (*insightsCmd) Usage() string {
	return `inv insights [-model <name>]

  Sends the portfolio summary and performance statistics, never the
  transactions nor the price history, to Gemini and prints its review.
  The API key is read from the environment variable named in the
  configuration (GEMINI_API_KEY by default).
`
}

func (c *insightsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "Gemini model, overrides the configuration")
}

func (c *insightsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, r, err := evaluate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	summary := investo.NewSummary(ledger, r.Stats)

	client, err := insight.NewClient(ctx, os.Getenv(cfg.Gemini.APIKeyEnv))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	model := cfg.Gemini.Model
	if c.model != "" {
		model = c.model
	}
	advisor := insight.NewAdvisor(client.Models, model, cfg.Gemini.Temp, cfg.Gemini.MaxTokens)
	text, err := advisor.Insights(ctx, summary, cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(summary, cfg.Currency) + "\n" + text + "\n")
	return subcommands.ExitSuccess
}
