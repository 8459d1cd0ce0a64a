package usecase

import (
	"sort"

	"TickLens/internal/domain/models"
)

// Extract computes the point and aggregate metrics for a series over the
// interval, dispatching on the series tag. Symbol is left for the caller to
// fill. The series must be non-empty; the orchestrator treats an empty series
// as fallback-or-failure before extraction is ever reached.
func Extract(s models.Series, iv models.Interval) models.Analysis {
	res := models.Analysis{
		T1:     iv.Start,
		T2:     iv.End,
		Source: s.Kind,
	}

	switch s.Kind {
	case models.SourceTicks:
		extractTicks(&res, s.Ticks, iv)
	case models.SourceBars:
		extractBars(&res, s.Bars, iv)
	}

	derivePercentages(&res)
	return res
}

func extractTicks(res *models.Analysis, ticks []models.Trade, iv models.Interval) {
	if len(ticks) == 0 {
		return
	}

	// Boundary searches require ascending order. The fetcher sorts, but
	// extraction must not depend on who hands it the slice.
	less := func(i, j int) bool { return ticks[i].Timestamp.Before(ticks[j].Timestamp) }
	if !sort.SliceIsSorted(ticks, less) {
		sort.Slice(ticks, less)
	}

	// Earliest tick at or after the interval start.
	first := sort.Search(len(ticks), func(i int) bool {
		return !ticks[i].Timestamp.Before(iv.Start)
	})
	if first < len(ticks) {
		price := ticks[first].Price
		size := ticks[first].Size
		res.PriceAtT1 = &price
		res.VolumeAtT1 = &size
	}

	// Latest tick at or before the interval end (last, not nearest).
	last := sort.Search(len(ticks), func(i int) bool {
		return ticks[i].Timestamp.After(iv.End)
	}) - 1
	if last >= 0 {
		price := ticks[last].Price
		res.PriceAtT2 = &price
	}

	maxP, minP := ticks[0].Price, ticks[0].Price
	for _, t := range ticks[1:] {
		if t.Price > maxP {
			maxP = t.Price
		}
		if t.Price < minP {
			minP = t.Price
		}
	}
	res.MaxPrice = &maxP
	res.MinPrice = &minP
}

func extractBars(res *models.Analysis, bars []models.Bar, iv models.Interval) {
	if len(bars) == 0 {
		return
	}

	// Prefer the bar whose bucket contains the interval start; otherwise the
	// earliest bar opening at or after it.
	atOrBefore := sort.Search(len(bars), func(i int) bool {
		return bars[i].Timestamp.After(iv.Start)
	}) - 1
	startIdx := -1
	if atOrBefore >= 0 && bars[atOrBefore].Timestamp.Add(models.BarWidth).After(iv.Start) {
		startIdx = atOrBefore
	} else {
		atOrAfter := sort.Search(len(bars), func(i int) bool {
			return !bars[i].Timestamp.Before(iv.Start)
		})
		if atOrAfter < len(bars) {
			startIdx = atOrAfter
		}
	}
	if startIdx >= 0 {
		price := bars[startIdx].Open
		vol := bars[startIdx].Volume
		res.PriceAtT1 = &price
		res.VolumeAtT1 = &vol
	}

	// Latest bar opening at or before the interval end.
	last := sort.Search(len(bars), func(i int) bool {
		return bars[i].Timestamp.After(iv.End)
	}) - 1
	if last >= 0 {
		price := bars[last].Close
		res.PriceAtT2 = &price
	}

	maxP, minP := bars[0].High, bars[0].Low
	for _, b := range bars[1:] {
		if b.High > maxP {
			maxP = b.High
		}
		if b.Low < minP {
			minP = b.Low
		}
	}
	res.MaxPrice = &maxP
	res.MinPrice = &minP
}

// derivePercentages fills the percentage fields from the point values. A nil
// or zero reference price leaves them nil rather than producing Inf/NaN.
func derivePercentages(res *models.Analysis) {
	if res.PriceAtT1 == nil {
		return
	}
	base := *res.PriceAtT1
	if base == 0 {
		return
	}

	if res.MaxPrice != nil {
		v := (*res.MaxPrice - base) / base * 100
		res.PctIncreaseToMax = &v
	}
	if res.MinPrice != nil {
		v := (*res.MinPrice - base) / base * 100
		res.PctDecreaseToMin = &v
	}
	if res.PriceAtT2 != nil {
		v := (*res.PriceAtT2 - base) / base * 100
		res.PctChangeT1ToT2 = &v
	}
}
