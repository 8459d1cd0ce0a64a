package repository

import (
	"context"

	"TickLens/internal/domain/models"
)

// MarketData retrieves raw observations from the upstream provider.
type MarketData interface {
	// FetchTrades returns every tick observation for the interval, sorted by
	// timestamp ascending, paging through the provider as needed.
	FetchTrades(ctx context.Context, symbol string, iv models.Interval) ([]models.Trade, error)

	// FetchBars returns the one-minute bars overlapping the interval in a
	// single range-bounded request.
	FetchBars(ctx context.Context, symbol string, iv models.Interval) ([]models.Bar, error)
}

// Metrics records operational measurements.
type Metrics interface {
	RecordUpstreamRequest(endpoint, status string)
	RecordPages(endpoint string, pages int)
	RecordFallback(reason string)
	RecordAnalysis(outcome string)
	RecordLatency(op string, seconds float64)
}
