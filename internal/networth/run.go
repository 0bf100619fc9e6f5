package networth

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cleared-dev/networth/internal/dates"
)

// Header is the CSV header of the series.
const Header = "Date,Net Worth"

// ErrRange is returned when the end date precedes the start date.
var ErrRange = errors.New("end date before start date")

// Observer is called with each sample after its row has been written.
type Observer func(Sample)

// Run writes the header and one row per day from start to end inclusive.
// Each row is flushed before the next day is fetched. On error, rows already
// written are left in place.
func Run(ctx context.Context, w io.Writer, f *Fetcher, start, end time.Time, observers ...Observer) error {
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s < start date %s", ErrRange, dates.Format(end), dates.Format(start))
	}

	cw := csv.NewWriter(w)
	if err := writeRow(cw, strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for cur := start; !cur.After(end); cur = dates.Next(cur) {
		s, err := f.FetchRow(ctx, cur)
		if err != nil {
			return err
		}
		if err := writeRow(cw, s.Row()); err != nil {
			return fmt.Errorf("writing row %s: %w", dates.Format(cur), err)
		}
		for _, o := range observers {
			o(s)
		}
	}
	return nil
}

func writeRow(cw *csv.Writer, row []string) error {
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
