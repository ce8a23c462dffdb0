package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Environment variables passed to extensions.
const (
	EnvLedgerFile = "INV_LEDGER_FILE"
	EnvMarketDir  = "INV_MARKET_DIR"
	EnvCurrency   = "INV_CURRENCY"
	EnvVerbose    = "INV_VERBOSE"
)

// RunExtension attempts to find and execute an external inv-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "inv-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		logrus.WithError(err).WithField("extension", name).Debug("extension not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass the effective configuration as environment variables.
	cmd.Env = append(os.Environ(),
		EnvLedgerFile+"="+cfg.LedgerFile,
		EnvMarketDir+"="+cfg.MarketDir,
		EnvCurrency+"="+cfg.Currency,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing extension %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
