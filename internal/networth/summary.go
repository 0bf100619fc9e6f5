package networth

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/networth/internal/dates"
)

// Summary tracks the first and last numeric balances of a run.
type Summary struct {
	First, Last Sample
	FirstAmount decimal.Decimal
	LastAmount  decimal.Decimal
	Days        int
	Unparseable int
	numeric     bool
}

// Observe records s. It is an Observer.
func (sum *Summary) Observe(s Sample) {
	sum.Days++
	amt, err := s.Amount()
	if err != nil {
		sum.Unparseable++
		return
	}
	if !sum.numeric {
		sum.First, sum.FirstAmount = s, amt
		sum.numeric = true
	}
	sum.Last, sum.LastAmount = s, amt
}

// Change returns LastAmount - FirstAmount and whether any balance was numeric.
func (sum *Summary) Change() (decimal.Decimal, bool) {
	if !sum.numeric {
		return decimal.Zero, false
	}
	return sum.LastAmount.Sub(sum.FirstAmount), true
}

// Write prints a short human-readable summary.
func (sum *Summary) Write(w io.Writer) error {
	change, ok := sum.Change()
	if !ok {
		_, err := fmt.Fprintf(w, "%d days, no numeric balances\n", sum.Days)
		return err
	}
	_, err := fmt.Fprintf(w, "%d days: %s %s -> %s %s (change %s)\n",
		sum.Days,
		dates.Format(sum.First.Date), sum.FirstAmount.StringFixed(2),
		dates.Format(sum.Last.Date), sum.LastAmount.StringFixed(2),
		change.StringFixed(2))
	if err != nil {
		return err
	}
	if sum.Unparseable > 0 {
		_, err = fmt.Fprintf(w, "%d balances could not be read as a number\n", sum.Unparseable)
	}
	return err
}
