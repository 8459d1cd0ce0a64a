package alpaca

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"TickLens/internal/domain/models"
	drepo "TickLens/internal/domain/repository"
	xlogger "TickLens/pkg/logger"
)

type noopMetrics struct{}

func (noopMetrics) RecordUpstreamRequest(endpoint, status string) {}
func (noopMetrics) RecordPages(endpoint string, pages int)        {}
func (noopMetrics) RecordFallback(reason string)                  {}
func (noopMetrics) RecordAnalysis(outcome string)                 {}
func (noopMetrics) RecordLatency(op string, seconds float64)      {}

var _ drepo.MarketData = (*Client)(nil)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newTestClient(t *testing.T, baseURL string, maxPages int) *Client {
	t.Helper()
	return New(Config{
		BaseURL:        baseURL,
		KeyID:          "key",
		SecretKey:      "secret",
		TradePageLimit: 2,
		MaxPages:       maxPages,
		RequestTimeout: 2 * time.Second,
		RateCapacity:   1000,
		RateRefill:     1000,
		Logger:         testLogger(t),
		Metrics:        noopMetrics{},
	})
}

var testInterval = models.Interval{
	Start: time.Date(2024, 10, 10, 14, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 10, 10, 14, 1, 0, 0, time.UTC),
}

func TestFetchTradesPaginates(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stocks/trades" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("APCA-API-KEY-ID") != "key" || r.Header.Get("APCA-API-SECRET-KEY") != "secret" {
			t.Errorf("missing auth headers")
		}
		q := r.URL.Query()
		if q.Get("symbols") != "AAPL" || q.Get("limit") != "2" {
			t.Errorf("unexpected query %v", q)
		}

		calls++
		switch calls {
		case 1:
			if q.Get("page_token") != "" {
				t.Errorf("first page must carry no token")
			}
			// Deliberately unsorted within and across pages.
			fmt.Fprint(w, `{"trades":{"AAPL":[
				{"t":"2024-10-10T14:00:20Z","p":110,"s":7},
				{"t":"2024-10-10T14:00:10Z","p":100,"s":3}
			]},"next_page_token":"tok-1"}`)
		case 2:
			if q.Get("page_token") != "tok-1" {
				t.Errorf("expected continuation token, got %q", q.Get("page_token"))
			}
			fmt.Fprint(w, `{"trades":{"AAPL":[
				{"t":"2024-10-10T14:00:30Z","p":90,"s":2}
			]}}`)
		default:
			t.Errorf("unexpected extra call %d", calls)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 10)
	ticks, err := c.FetchTrades(context.Background(), "AAPL", testInterval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 page requests, got %d", calls)
	}
	if len(ticks) != 3 {
		t.Fatalf("expected 3 reassembled ticks, got %d", len(ticks))
	}
	if !sort.SliceIsSorted(ticks, func(i, j int) bool {
		return ticks[i].Timestamp.Before(ticks[j].Timestamp)
	}) {
		t.Fatalf("ticks must be sorted ascending: %+v", ticks)
	}
	if ticks[0].Price != 100 || ticks[2].Price != 90 {
		t.Fatalf("unexpected tick order %+v", ticks)
	}
}

func TestFetchTradesPageCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A provider that never stops returning tokens.
		fmt.Fprint(w, `{"trades":{"AAPL":[{"t":"2024-10-10T14:00:10Z","p":100,"s":1}]},"next_page_token":"again"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	_, err := c.FetchTrades(context.Background(), "AAPL", testInterval)
	if !errors.Is(err, models.ErrTooManyPages) {
		t.Fatalf("expected ErrTooManyPages, got %v", err)
	}
}

func TestFetchTradesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 10)
	_, err := c.FetchTrades(context.Background(), "AAPL", testInterval)
	if err == nil {
		t.Fatalf("expected error on non-2xx")
	}
}

func TestFetchTradesEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"trades":{}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 10)
	ticks, err := c.FetchTrades(context.Background(), "AAPL", testInterval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ticks) != 0 {
		t.Fatalf("expected no ticks, got %d", len(ticks))
	}
}

func TestFetchBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stocks/bars" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("timeframe") != "1Min" {
			t.Errorf("expected 1Min timeframe, got %q", r.URL.Query().Get("timeframe"))
		}
		fmt.Fprint(w, `{"bars":{"AAPL":[
			{"t":"2024-10-10T14:00:00Z","o":50,"h":55,"l":48,"c":52,"v":1000}
		]}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 10)
	bars, err := c.FetchBars(context.Background(), "AAPL", testInterval)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(bars))
	}
	if bars[0].Open != 50 || bars[0].Volume != 1000 {
		t.Fatalf("unexpected bar %+v", bars[0])
	}
}

func TestFetchBarsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 10)
	if _, err := c.FetchBars(context.Background(), "AAPL", testInterval); err == nil {
		t.Fatalf("expected error on non-2xx")
	}
}
