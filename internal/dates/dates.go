package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the YYYY-MM-DD layout used for arguments, ledger boundaries and CSV rows.
const Layout = "2006-01-02"

var (
	// ErrInvalidFormat is returned when a string is not shaped like YYYY-MM-DD.
	ErrInvalidFormat = errors.New("invalid date format")
	// ErrInvalidDate is returned when the fields are well formed but name no calendar day.
	ErrInvalidDate = errors.New("invalid calendar date")
)

// Parse parses a strict "YYYY-MM-DD" date into midnight UTC.
// Surrounding whitespace is ignored.
func Parse(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return time.Time{}, fmt.Errorf("%w: %s is not in YYYY-MM-DD format", ErrInvalidFormat, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in date %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in date %q: %w", s, err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in date %q: %w", s, err)
	}

	return New(year, month, day)
}

// New builds a date, rejecting values that time.Date would silently normalize
// (month 13, day 32, February 30).
func New(year, month, day int) (time.Time, error) {
	if year < 1 {
		return time.Time{}, fmt.Errorf("%w: year %d is out of range", ErrInvalidDate, year)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month must be in 1..12, got %d", ErrInvalidDate, month)
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || d.Day() != day {
		return time.Time{}, fmt.Errorf("%w: day is out of range for %04d-%02d, got %d", ErrInvalidDate, year, month, day)
	}
	return d, nil
}

// Next returns the calendar day after d.
func Next(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// Format renders d as YYYY-MM-DD.
func Format(d time.Time) string {
	return d.Format(Layout)
}
