package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/networth/internal/dates"
)

// DefaultPath is where the ledger executable is expected when none is configured.
const DefaultPath = "/usr/bin/ledger"

// DefaultCurrency is the commodity every balance is converted to.
const DefaultCurrency = "$"

// DefaultAccounts are the account patterns whose combined balance is net worth.
var DefaultAccounts = []string{"Assets", "Liabilities"}

// ErrShortReport is returned when a report has no trailing line to take a balance from.
var ErrShortReport = errors.New("balance report has too few lines")

// Reporter produces a balance report covering every posting before end.
type Reporter interface {
	BalanceReport(ctx context.Context, end time.Time) (string, error)
}

// CLI runs the ledger executable once per report.
type CLI struct {
	Path     string   // executable, DefaultPath if empty
	File     string   // journal passed with -f; ledger's own default if empty
	Accounts []string // DefaultAccounts if empty
	Currency string   // DefaultCurrency if empty
	Real     bool     // exclude virtual postings

	Logger zerolog.Logger
}

// NewCLI returns a CLI with the default invocation: Assets and Liabilities in $, real postings only.
func NewCLI(path string) *CLI {
	return &CLI{
		Path:     path,
		Accounts: DefaultAccounts,
		Currency: DefaultCurrency,
		Real:     true,
		Logger:   zerolog.Nop(),
	}
}

// Args returns the arguments passed to the executable for a report ending at end (exclusive).
func (c *CLI) Args(end time.Time) []string {
	var args []string
	if c.File != "" {
		args = append(args, "-f", c.File)
	}
	args = append(args, "bal")

	accounts := c.Accounts
	if len(accounts) == 0 {
		accounts = DefaultAccounts
	}
	args = append(args, accounts...)

	currency := c.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	args = append(args, "-X", currency)

	if c.Real {
		args = append(args, "--real")
	}
	return append(args, "--end", dates.Format(end))
}

func (c *CLI) path() string {
	if c.Path == "" {
		return DefaultPath
	}
	return c.Path
}

// BalanceReport runs the executable and returns its standard output.
// A non-zero exit is returned as an error wrapping *exec.ExitError, with stderr attached.
func (c *CLI) BalanceReport(ctx context.Context, end time.Time) (string, error) {
	args := c.Args(end)
	c.Logger.Debug().Str("path", c.path()).Strs("args", args).Msg("running ledger")

	cmd := exec.CommandContext(ctx, c.path(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("ledger bal --end %s: %w", dates.Format(end), err)
		}
		return "", fmt.Errorf("ledger bal --end %s: %s: %w", dates.Format(end), msg, err)
	}
	return stdout.String(), nil
}

// LastLine returns the final line of a newline-terminated report, trimmed.
// The report must end with a newline; the empty string after it is dropped
// and the line before it is the balance. For a multi-currency or multi-line
// total only that last line is kept.
func LastLine(report string) (string, error) {
	lines := strings.Split(report, "\n")
	if len(lines) < 2 {
		return "", fmt.Errorf("%w: got %d", ErrShortReport, len(lines))
	}
	return strings.TrimSpace(lines[len(lines)-2]), nil
}
