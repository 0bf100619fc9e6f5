package networth

import (
	"context"
	"fmt"
	"time"

	"github.com/cleared-dev/networth/internal/dates"
	"github.com/cleared-dev/networth/internal/ledger"
)

// Fetcher turns one day into a Sample using a ledger.Reporter.
type Fetcher struct {
	reporter ledger.Reporter
}

// NewFetcher creates a Fetcher backed by r.
func NewFetcher(r ledger.Reporter) *Fetcher {
	return &Fetcher{reporter: r}
}

// FetchRow returns the balance at the end of day. The report is requested
// with the next day as its exclusive end so that day's postings are included.
func (f *Fetcher) FetchRow(ctx context.Context, day time.Time) (Sample, error) {
	report, err := f.reporter.BalanceReport(ctx, dates.Next(day))
	if err != nil {
		return Sample{}, fmt.Errorf("balance for %s: %w", dates.Format(day), err)
	}
	bal, err := ledger.LastLine(report)
	if err != nil {
		return Sample{}, fmt.Errorf("balance for %s: %w", dates.Format(day), err)
	}
	return Sample{Date: day, Balance: bal}, nil
}
