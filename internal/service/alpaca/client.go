package alpaca

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"TickLens/internal/domain/models"
	drepo "TickLens/internal/domain/repository"
	"TickLens/internal/service/ratelimit"
	xhttp "TickLens/pkg/http"
	xlogger "TickLens/pkg/logger"
)

// Client implements drepo.MarketData against the Alpaca market data API.
type Client struct {
	baseURL        string
	keyID          string
	secretKey      string
	tradePageLimit int
	barLimit       int
	barTimeframe   string
	maxPages       int
	rateCapacity   float64
	rateRefill     float64

	http    *xhttp.Client
	limiter *ratelimit.Limiter
	logger  *xlogger.Logger
	metrics drepo.Metrics
}

// Config holds configuration specific to the Alpaca client adapter.
type Config struct {
	BaseURL        string
	KeyID          string
	SecretKey      string
	TradePageLimit int
	BarLimit       int
	BarTimeframe   string
	MaxPages       int
	RequestTimeout time.Duration
	RateCapacity   float64
	RateRefill     float64
	Logger         *xlogger.Logger
	Metrics        drepo.Metrics
}

// New creates a new Alpaca market data client.
func New(cfg Config) *Client {
	if cfg.TradePageLimit <= 0 {
		cfg.TradePageLimit = 10000
	}
	if cfg.BarLimit <= 0 {
		cfg.BarLimit = 1000
	}
	if cfg.BarTimeframe == "" {
		cfg.BarTimeframe = "1Min"
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 50
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.RateCapacity <= 0 {
		cfg.RateCapacity = 10
	}
	if cfg.RateRefill <= 0 {
		cfg.RateRefill = 3
	}

	return &Client{
		baseURL:        cfg.BaseURL,
		keyID:          cfg.KeyID,
		secretKey:      cfg.SecretKey,
		tradePageLimit: cfg.TradePageLimit,
		barLimit:       cfg.BarLimit,
		barTimeframe:   cfg.BarTimeframe,
		maxPages:       cfg.MaxPages,
		rateCapacity:   cfg.RateCapacity,
		rateRefill:     cfg.RateRefill,
		http:           xhttp.NewClient(xhttp.WithTimeout(cfg.RequestTimeout)),
		limiter:        ratelimit.New(),
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
	}
}

type tradesResponse struct {
	Trades        map[string][]models.Trade `json:"trades"`
	NextPageToken *string                   `json:"next_page_token"`
}

type barsResponse struct {
	Bars map[string][]models.Bar `json:"bars"`
}

// FetchTrades pages through the trade endpoint until the provider omits a
// continuation token, then sorts the reassembled sequence by timestamp. The
// loop is bounded by maxPages so a provider that always returns a token
// cannot hang a request.
func (c *Client) FetchTrades(ctx context.Context, symbol string, iv models.Interval) ([]models.Trade, error) {
	var all []models.Trade
	token := ""

	for page := 0; ; page++ {
		if page >= c.maxPages {
			c.metrics.RecordPages("trades", page)
			return nil, fmt.Errorf("%w: %d pages for %s", models.ErrTooManyPages, page, symbol)
		}
		if err := c.limiter.Wait(ctx, "trades", c.rateCapacity, c.rateRefill); err != nil {
			return nil, fmt.Errorf("rate wait: %w", err)
		}

		params := c.rangeParams(symbol, iv, c.tradePageLimit)
		if token != "" {
			params["page_token"] = []string{token}
		}

		var out tradesResponse
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method:      xhttp.MethodGet,
			URL:         c.baseURL + "/stocks/trades",
			Headers:     c.authHeaders(),
			QueryParams: params,
		}, &out)
		if err != nil {
			c.metrics.RecordUpstreamRequest("trades", "error")
			return nil, fmt.Errorf("fetch trades: %w", err)
		}
		c.metrics.RecordUpstreamRequest("trades", "ok")

		all = append(all, out.Trades[symbol]...)

		if out.NextPageToken == nil || *out.NextPageToken == "" {
			c.metrics.RecordPages("trades", page+1)
			break
		}
		token = *out.NextPageToken
	}

	// Provider does not guarantee tick ordering; downstream boundary searches
	// require timestamp-ascending order.
	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})

	c.logger.Debug("trades fetched",
		xlogger.String("symbol", symbol),
		xlogger.Int("count", len(all)),
	)
	return all, nil
}

// FetchBars issues a single range-bounded request for one-minute bars.
func (c *Client) FetchBars(ctx context.Context, symbol string, iv models.Interval) ([]models.Bar, error) {
	if err := c.limiter.Wait(ctx, "bars", c.rateCapacity, c.rateRefill); err != nil {
		return nil, fmt.Errorf("rate wait: %w", err)
	}

	params := c.rangeParams(symbol, iv, c.barLimit)
	params["timeframe"] = []string{c.barTimeframe}

	var out barsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/stocks/bars",
		Headers:     c.authHeaders(),
		QueryParams: params,
	}, &out)
	if err != nil {
		c.metrics.RecordUpstreamRequest("bars", "error")
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	c.metrics.RecordUpstreamRequest("bars", "ok")
	c.metrics.RecordPages("bars", 1)

	bars := out.Bars[symbol]
	c.logger.Debug("bars fetched",
		xlogger.String("symbol", symbol),
		xlogger.Int("count", len(bars)),
	)
	return bars, nil
}

func (c *Client) rangeParams(symbol string, iv models.Interval, limit int) map[string][]string {
	return map[string][]string{
		"symbols": {symbol},
		"start":   {iv.Start.UTC().Format(time.RFC3339Nano)},
		"end":     {iv.End.UTC().Format(time.RFC3339Nano)},
		"limit":   {strconv.Itoa(limit)},
	}
}

func (c *Client) authHeaders() map[string]string {
	return map[string]string{
		"APCA-API-KEY-ID":     c.keyID,
		"APCA-API-SECRET-KEY": c.secretKey,
	}
}
