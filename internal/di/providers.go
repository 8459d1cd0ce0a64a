package di

import (
	"TickLens/internal/domain/repository"
	"TickLens/internal/handler/api"
	"TickLens/internal/service/alpaca"
	"TickLens/internal/usecase"
	"TickLens/pkg/config"
	xhttp "TickLens/pkg/http"
	xlogger "TickLens/pkg/logger"
	"TickLens/pkg/metrics"
	"TickLens/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	return xlogger.New(&xlogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketData creates the Alpaca market data client.
func ProvideMarketData(cfg *config.Config, logger *xlogger.Logger, m repository.Metrics) repository.MarketData {
	return alpaca.New(alpaca.Config{
		BaseURL:        cfg.Alpaca.BaseURL,
		KeyID:          cfg.Alpaca.KeyID,
		SecretKey:      cfg.Alpaca.SecretKey,
		TradePageLimit: cfg.Alpaca.TradePageLimit,
		BarLimit:       cfg.Alpaca.BarLimit,
		BarTimeframe:   cfg.Alpaca.BarTimeframe,
		MaxPages:       cfg.Alpaca.MaxPages,
		RequestTimeout: cfg.Alpaca.RequestTimeout,
		RateCapacity:   cfg.Alpaca.RateCapacity,
		RateRefill:     cfg.Alpaca.RateRefill,
		Logger:         logger,
		Metrics:        m,
	})
}

// ProvideAnalyzer creates the analysis use case.
func ProvideAnalyzer(market repository.MarketData, m repository.Metrics, logger *xlogger.Logger) *usecase.Analyzer {
	return usecase.NewAnalyzer(market, m, logger)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer) xhttp.Handler {
	return api.NewAnalysisHandler(logger, analyzer)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, logger *xlogger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, logger, handler)
}
