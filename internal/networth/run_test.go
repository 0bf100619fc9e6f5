package networth

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/networth/internal/dates"
	"github.com/cleared-dev/networth/internal/ledger"
)

// stubReporter returns a fixed report and records every end boundary it was asked for.
type stubReporter struct {
	report string
	failOn string // end boundary (YYYY-MM-DD) that returns err
	err    error
	calls  []string
}

func (s *stubReporter) BalanceReport(_ context.Context, end time.Time) (string, error) {
	e := dates.Format(end)
	s.calls = append(s.calls, e)
	if s.failOn == e {
		return "", s.err
	}
	return s.report, nil
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	require.NoError(t, err)
	return d
}

func TestRun_Scenario(t *testing.T) {
	stub := &stubReporter{report: "x\n  $100\n"}
	var buf bytes.Buffer

	err := Run(context.Background(), &buf, NewFetcher(stub), date(t, "2024-01-01"), date(t, "2024-01-03"))
	require.NoError(t, err)

	want := "Date,Net Worth\n2024-01-01,$100\n2024-01-02,$100\n2024-01-03,$100\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, []string{"2024-01-02", "2024-01-03", "2024-01-04"}, stub.calls)
}

func TestRun_SingleDay(t *testing.T) {
	stub := &stubReporter{report: "x\n  $5\n"}
	var buf bytes.Buffer

	err := Run(context.Background(), &buf, NewFetcher(stub), date(t, "2024-02-29"), date(t, "2024-02-29"))
	require.NoError(t, err)

	assert.Equal(t, "Date,Net Worth\n2024-02-29,$5\n", buf.String())
	assert.Equal(t, []string{"2024-03-01"}, stub.calls)
}

func TestRun_DayCountAndOrder(t *testing.T) {
	stub := &stubReporter{report: "x\n  $1\n"}
	var buf bytes.Buffer

	// Crosses a month and a year boundary.
	err := Run(context.Background(), &buf, NewFetcher(stub), date(t, "2023-12-15"), date(t, "2024-01-14"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 32, "header + 31 days")
	assert.Len(t, stub.calls, 31)

	prev := date(t, "2023-12-14")
	for _, line := range lines[1:] {
		d := date(t, strings.SplitN(line, ",", 2)[0])
		assert.Equal(t, dates.Next(prev), d)
		prev = d
	}
}

func TestRun_EndBeforeStart(t *testing.T) {
	stub := &stubReporter{report: "x\n  $1\n"}
	var buf bytes.Buffer

	err := Run(context.Background(), &buf, NewFetcher(stub), date(t, "2024-02-01"), date(t, "2024-01-01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRange)
	assert.Empty(t, buf.String(), "nothing, not even the header, is written")
	assert.Empty(t, stub.calls)
}

func TestRun_BalanceWithComma(t *testing.T) {
	stub := &stubReporter{report: "Header line\n  $1,234.56\n"}
	var buf bytes.Buffer

	err := Run(context.Background(), &buf, NewFetcher(stub), date(t, "2024-01-01"), date(t, "2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "Date,Net Worth\n2024-01-01,\"$1,234.56\"\n", buf.String())
}

func TestRun_ReporterFailureKeepsEarlierRows(t *testing.T) {
	boom := errors.New("exit status 1")
	stub := &stubReporter{report: "x\n  $7\n", failOn: "2024-01-03", err: boom}
	var buf bytes.Buffer

	err := Run(context.Background(), &buf, NewFetcher(stub), date(t, "2024-01-01"), date(t, "2024-01-05"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "balance for 2024-01-02")

	assert.Equal(t, "Date,Net Worth\n2024-01-01,$7\n", buf.String())
	assert.Len(t, stub.calls, 2, "no further days are fetched after a failure")
}

func TestRun_ShortReport(t *testing.T) {
	stub := &stubReporter{report: ""}
	var buf bytes.Buffer

	err := Run(context.Background(), &buf, NewFetcher(stub), date(t, "2024-01-01"), date(t, "2024-01-02"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrShortReport)
	assert.Equal(t, "Date,Net Worth\n", buf.String())
}

// flushCounter records the writer contents at the moment each fetch happens.
type flushCounter struct {
	buf  *bytes.Buffer
	seen []string
}

func (f *flushCounter) BalanceReport(_ context.Context, _ time.Time) (string, error) {
	f.seen = append(f.seen, f.buf.String())
	return "x\n  $1\n", nil
}

func TestRun_Streams(t *testing.T) {
	var buf bytes.Buffer
	fc := &flushCounter{buf: &buf}

	err := Run(context.Background(), &buf, NewFetcher(fc), date(t, "2024-01-01"), date(t, "2024-01-03"))
	require.NoError(t, err)

	require.Len(t, fc.seen, 3)
	assert.Equal(t, "Date,Net Worth\n", fc.seen[0])
	assert.Equal(t, "Date,Net Worth\n2024-01-01,$1\n", fc.seen[1])
	assert.Equal(t, "Date,Net Worth\n2024-01-01,$1\n2024-01-02,$1\n", fc.seen[2])
}

func TestRun_Observers(t *testing.T) {
	stub := &stubReporter{report: "x\n  $3\n"}
	var got []Sample

	err := Run(context.Background(), &bytes.Buffer{}, NewFetcher(stub), date(t, "2024-01-01"), date(t, "2024-01-02"),
		func(s Sample) { got = append(got, s) })
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-02", dates.Format(got[1].Date))
	assert.Equal(t, "$3", got[1].Balance)
}
