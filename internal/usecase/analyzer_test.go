package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"TickLens/internal/domain/models"
	xlogger "TickLens/pkg/logger"
)

type fakeMarket struct {
	ticks    []models.Trade
	ticksErr error
	bars     []models.Bar
	barsErr  error

	barCalls int
}

func (f *fakeMarket) FetchTrades(ctx context.Context, symbol string, iv models.Interval) ([]models.Trade, error) {
	return f.ticks, f.ticksErr
}

func (f *fakeMarket) FetchBars(ctx context.Context, symbol string, iv models.Interval) ([]models.Bar, error) {
	f.barCalls++
	return f.bars, f.barsErr
}

type noopMetrics struct{}

func (noopMetrics) RecordUpstreamRequest(endpoint, status string) {}
func (noopMetrics) RecordPages(endpoint string, pages int)        {}
func (noopMetrics) RecordFallback(reason string)                  {}
func (noopMetrics) RecordAnalysis(outcome string)                 {}
func (noopMetrics) RecordLatency(op string, seconds float64)      {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newTestAnalyzer(t *testing.T, m *fakeMarket) *Analyzer {
	t.Helper()
	return NewAnalyzer(m, noopMetrics{}, testLogger(t))
}

func TestAnalyzeTicksFound(t *testing.T) {
	m := &fakeMarket{
		ticks: []models.Trade{
			{Timestamp: base.Add(time.Second), Price: 100, Size: 1},
		},
	}
	a := newTestAnalyzer(t, m)

	res, err := a.Analyze(context.Background(), "AAPL", base.Format(time.RFC3339), 60, UnitSeconds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != models.SourceTicks {
		t.Fatalf("expected ticks source, got %q", res.Source)
	}
	if res.Symbol != "AAPL" {
		t.Fatalf("unexpected symbol %q", res.Symbol)
	}
	if m.barCalls != 0 {
		t.Fatalf("bar fetch must not run when ticks exist")
	}
}

func TestAnalyzeFallsBackToBarsWhenTicksEmpty(t *testing.T) {
	m := &fakeMarket{
		bars: []models.Bar{
			{Timestamp: base, Open: 50, High: 55, Low: 48, Close: 52, Volume: 1000},
		},
	}
	a := newTestAnalyzer(t, m)

	res, err := a.Analyze(context.Background(), "AAPL", base.Format(time.RFC3339), 1, UnitMinutes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != models.SourceBars {
		t.Fatalf("expected bars source, got %q", res.Source)
	}
	if m.barCalls != 1 {
		t.Fatalf("expected one bar fetch, got %d", m.barCalls)
	}
}

func TestAnalyzeFallsBackToBarsWhenTickFetchFails(t *testing.T) {
	m := &fakeMarket{
		ticksErr: errors.New("boom"),
		bars: []models.Bar{
			{Timestamp: base, Open: 50, High: 55, Low: 48, Close: 52, Volume: 1000},
		},
	}
	a := newTestAnalyzer(t, m)

	res, err := a.Analyze(context.Background(), "AAPL", base.Format(time.RFC3339), 1, UnitMinutes)
	if err != nil {
		t.Fatalf("tick-path failure must not surface: %v", err)
	}
	if res.Source != models.SourceBars {
		t.Fatalf("expected bars source, got %q", res.Source)
	}
}

func TestAnalyzeNoData(t *testing.T) {
	m := &fakeMarket{}
	a := newTestAnalyzer(t, m)

	_, err := a.Analyze(context.Background(), "AAPL", base.Format(time.RFC3339), 60, UnitSeconds)
	if !errors.Is(err, models.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestAnalyzeBarFetchFailureIsFatal(t *testing.T) {
	m := &fakeMarket{barsErr: errors.New("boom")}
	a := newTestAnalyzer(t, m)

	_, err := a.Analyze(context.Background(), "AAPL", base.Format(time.RFC3339), 60, UnitSeconds)
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestAnalyzeInvalidInterval(t *testing.T) {
	m := &fakeMarket{}
	a := newTestAnalyzer(t, m)

	_, err := a.Analyze(context.Background(), "AAPL", "garbage", 60, UnitSeconds)
	if !errors.Is(err, models.ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
	if m.barCalls != 0 {
		t.Fatalf("no fetch may run for an invalid interval")
	}
}
