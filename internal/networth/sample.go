package networth

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/networth/internal/dates"
)

// Sample is one row of the series: the balance reported at the end of Date.
type Sample struct {
	Date    time.Time
	Balance string // verbatim last line of the report
}

// amountPattern finds a signed number with optional thousands separators.
var amountPattern = regexp.MustCompile(`-?\d[\d,]*(\.\d+)?`)

// Amount interprets Balance as a single number, ignoring any commodity symbol.
// "$1,234.56" -> 1234.56, "-$12" and "$-12" -> -12. The CSV never uses this.
func (s Sample) Amount() (decimal.Decimal, error) {
	b := strings.TrimSpace(s.Balance)
	m := amountPattern.FindString(b)
	if m == "" {
		return decimal.Zero, fmt.Errorf("no amount in balance %q", s.Balance)
	}
	neg := strings.HasPrefix(m, "-")
	if !neg {
		// Sign before the commodity, as in "-$12".
		if i := strings.Index(b, m); i > 0 && strings.Contains(b[:i], "-") {
			neg = true
		}
	}
	m = strings.TrimPrefix(m, "-")

	amt, err := decimal.NewFromString(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing balance %q: %w", s.Balance, err)
	}
	if neg {
		amt = amt.Neg()
	}
	return amt, nil
}

// Row converts a Sample to a CSV row.
func (s Sample) Row() []string {
	return []string{dates.Format(s.Date), s.Balance}
}
