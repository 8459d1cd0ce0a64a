package models

import "time"

// FetchRequest is the payload accepted by POST /api/fetch.
type FetchRequest struct {
	Symbol   string `json:"symbol" validate:"required"`
	T1       string `json:"t1" validate:"required"`
	Duration int64  `json:"duration" validate:"required,gt=0"`
	Unit     string `json:"unit" validate:"required,oneof=seconds minutes"`
}

// Analysis is the per-request result record. Nil numeric fields mean
// "undeterminable from available data", never zero. Created once per request
// and never mutated afterwards.
type Analysis struct {
	Symbol           string     `json:"symbol"`
	T1               time.Time  `json:"t1"`
	T2               time.Time  `json:"t2"`
	Source           SourceKind `json:"source"`
	PriceAtT1        *float64   `json:"priceAtT1"`
	PriceAtT2        *float64   `json:"priceAtT2"`
	MaxPrice         *float64   `json:"maxPrice"`
	MinPrice         *float64   `json:"minPrice"`
	PctIncreaseToMax *float64   `json:"pctIncreaseToMax"`
	PctDecreaseToMin *float64   `json:"pctDecreaseToMin"`
	PctChangeT1ToT2  *float64   `json:"pctChangeT1ToT2"`
	VolumeAtT1       *int64     `json:"volumeAtT1"`
}
