// Package cmd implements the CLI application to track and value a portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/investo"
	"github.com/etnz/investo/config"
	"github.com/etnz/investo/logging"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Commands are all the subcommands, in the order of the help output.
var Commands = []subcommands.Command{
	&declareCmd{},
	newAddCmd(investo.Buy),
	newAddCmd(investo.Sell),
	newAddCmd(investo.Deposit),
	newAddCmd(investo.Withdraw),
	&editCmd{},
	&rmCmd{},
	&txCmd{},
	&parseCmd{},
	&fmtCmd{},
	&fetchCmd{},
	&searchCmd{},
	&holdingsCmd{},
	&statsCmd{},
	&insightsCmd{},
	&topicCmd{},
}

// groups of the commands in the help output.
var groups = map[string]string{
	"declare": "ledger", "buy": "ledger", "sell": "ledger", "deposit": "ledger", "withdraw": "ledger",
	"edit": "ledger", "rm": "ledger", "tx": "ledger", "parse": "ledger", "fmt": "ledger",
	"fetch": "market", "search": "market",
	"holdings": "reports", "stats": "reports", "insights": "reports",
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd, groups[cmd.Name()])
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "inv.yaml", "Path to the YAML configuration file")
	ledgerFile = flag.String("ledger-file", "", "Path to the ledger file (JSONL format), overrides the configuration")
	marketDir  = flag.String("market-dir", "", "Path to the market data folder, overrides the configuration")
	currency   = flag.String("currency", "", "Reporting currency used to display amounts, overrides the configuration")
	Verbose    = flag.Bool("v", false, "Print debug logs")
)

// cfg is the effective configuration, see Setup.
var cfg = config.Default()

// Setup loads the configuration file, applies the global flags on top of it
// and configures logging. It must be called after flag.Parse.
func Setup() error {
	c, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *ledgerFile != "" {
		c.LedgerFile = *ledgerFile
	}
	if *marketDir != "" {
		c.MarketDir = *marketDir
	}
	if *currency != "" {
		c.Currency = *currency
	}
	if *Verbose {
		c.Logging.Level = "debug"
	}
	logging.Init(c.Logging)
	cfg = c
	return nil
}

// DecodeLedger decodes the ledger file. A missing file is an empty ledger.
func DecodeLedger() (*investo.Ledger, error) {
	f, err := os.Open(cfg.LedgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.WithField("file", cfg.LedgerFile).Warn("ledger does not exist, starting with an empty ledger")
		return investo.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", cfg.LedgerFile, err)
	}
	defer f.Close()
	ledger, err := investo.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", cfg.LedgerFile, err)
	}
	return ledger, nil
}

// EncodeLedger rewrites the ledger file in canonical form.
func EncodeLedger(ledger *investo.Ledger) error {
	tmp := cfg.LedgerFile + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cannot create ledger file: %w", err)
	}
	if err := investo.EncodeLedger(f, ledger); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write ledger file: %w", err)
	}
	return os.Rename(tmp, cfg.LedgerFile)
}

// EncodeTransaction appends a single transaction into the ledger file.
func EncodeTransaction(tx investo.Transaction) error {
	f, err := os.OpenFile(cfg.LedgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open ledger file %q: %w", cfg.LedgerFile, err)
	}
	defer f.Close()
	return investo.EncodeTransaction(f, tx)
}

// DecodeMarket decodes the market data folder.
func DecodeMarket() (*investo.Market, error) { return investo.DecodeMarket(cfg.MarketDir) }

// EncodeMarket encodes the market data into the market data folder.
func EncodeMarket(m *investo.Market) error { return investo.EncodeMarket(cfg.MarketDir, m) }

// load decodes the ledger and the market data.
func load() (*investo.Ledger, *investo.Market, error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, nil, err
	}
	market, err := DecodeMarket()
	if err != nil {
		return nil, nil, err
	}
	return ledger, market, nil
}

// run evaluates the ledger against the market. Data quality issues are logged.
func run(ledger *investo.Ledger, market *investo.Market) investo.Result {
	r := investo.Evaluate(ledger, market.Quotes())
	log := logging.Component("engine")
	for _, issue := range r.Issues {
		log.WithFields(logrus.Fields{"kind": issue.Kind, "instrument": issue.Instrument}).Warn(issue.String())
	}
	return r
}

// evaluate loads the ledger and the market and runs the valuation engine.
func evaluate() (*investo.Ledger, investo.Result, error) {
	ledger, market, err := load()
	if err != nil {
		return nil, investo.Result{}, err
	}
	return ledger, run(ledger, market), nil
}

// printMarkdown prints markdown to the terminal, styled when possible.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
