package usecase

import (
	"context"
	"fmt"
	"time"

	"TickLens/internal/domain/models"
	drepo "TickLens/internal/domain/repository"
	xlogger "TickLens/pkg/logger"
)

// Analyzer runs the resolve -> fetch ticks -> fall back to bars -> extract
// pipeline for a single request. Each request is independent; the analyzer
// holds no per-request state.
type Analyzer struct {
	market  drepo.MarketData
	metrics drepo.Metrics
	logger  *xlogger.Logger
}

func NewAnalyzer(market drepo.MarketData, metrics drepo.Metrics, logger *xlogger.Logger) *Analyzer {
	return &Analyzer{market: market, metrics: metrics, logger: logger}
}

// Analyze resolves the interval, retrieves the finest available granularity
// and extracts the result record. Classified failures: ErrInvalidInterval,
// ErrUpstreamUnavailable, ErrNoData.
func (a *Analyzer) Analyze(ctx context.Context, symbol, t1 string, duration int64, unit string) (*models.Analysis, error) {
	started := time.Now()

	iv, err := ResolveInterval(t1, duration, unit)
	if err != nil {
		a.metrics.RecordAnalysis("invalid")
		return nil, err
	}

	ticks, terr := a.market.FetchTrades(ctx, symbol, iv)
	if terr != nil {
		// Tick-path failures are the documented degrade path: recovered
		// locally, never surfaced to the caller on their own.
		a.logger.Warn("trade fetch failed, falling back to bars",
			xlogger.String("symbol", symbol),
			xlogger.Error(terr),
		)
		a.metrics.RecordFallback("trades_error")
		ticks = nil
	}

	var series models.Series
	if len(ticks) > 0 {
		series = models.TickSeries(ticks)
	} else {
		if terr == nil {
			a.metrics.RecordFallback("trades_empty")
		}
		bars, berr := a.market.FetchBars(ctx, symbol, iv)
		if berr != nil {
			a.metrics.RecordAnalysis("upstream_error")
			return nil, fmt.Errorf("%w: %w", models.ErrUpstreamUnavailable, berr)
		}
		if len(bars) == 0 {
			a.metrics.RecordAnalysis("no_data")
			return nil, fmt.Errorf("%w: %s in [%s, %s)", models.ErrNoData,
				symbol, iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
		}
		series = models.BarSeries(bars)
	}

	res := Extract(series, iv)
	res.Symbol = symbol

	if res.PriceAtT1 != nil && *res.PriceAtT1 == 0 {
		a.logger.Warn("zero reference price, percentages omitted",
			xlogger.String("symbol", symbol),
		)
	}

	a.metrics.RecordAnalysis("ok")
	a.metrics.RecordLatency("analyze", time.Since(started).Seconds())
	return &res, nil
}
