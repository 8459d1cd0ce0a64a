package models

import "time"

// SourceKind identifies which upstream granularity produced a series.
type SourceKind string

const (
	SourceTicks SourceKind = "ticks"
	SourceBars  SourceKind = "bars"
)

// BarWidth is the fixed width of an upstream bar bucket.
const BarWidth = time.Minute

// Trade is a single executed transaction. JSON tags follow the provider's
// trade payload.
type Trade struct {
	Timestamp time.Time `json:"t"`
	Price     float64   `json:"p"`
	Size      int64     `json:"s"`
}

// Bar is a one-minute OHLCV aggregate covering [Timestamp, Timestamp+BarWidth).
// The provider guarantees bars arrive chronologically ordered and
// non-overlapping.
type Bar struct {
	Timestamp time.Time `json:"t"`
	Open      float64   `json:"o"`
	High      float64   `json:"h"`
	Low       float64   `json:"l"`
	Close     float64   `json:"c"`
	Volume    int64     `json:"v"`
}

// Series is a tagged union over the two observation granularities. Exactly
// one of Ticks/Bars is populated, according to Kind.
type Series struct {
	Kind  SourceKind
	Ticks []Trade
	Bars  []Bar
}

// TickSeries wraps tick observations as a Series.
func TickSeries(ts []Trade) Series { return Series{Kind: SourceTicks, Ticks: ts} }

// BarSeries wraps bar observations as a Series.
func BarSeries(bs []Bar) Series { return Series{Kind: SourceBars, Bars: bs} }

// Len returns the number of observations in the series.
func (s Series) Len() int {
	if s.Kind == SourceTicks {
		return len(s.Ticks)
	}
	return len(s.Bars)
}
