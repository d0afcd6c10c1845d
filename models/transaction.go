package models

import "time"

// RawRecord holds one resale transaction exactly as the datastore API
// returns it: every field is a string. Field names follow the upstream
// column names; no renaming happens on fetch.
type RawRecord struct {
	Town              string `json:"town"`
	FlatType          string `json:"flat_type"`
	FlatModel         string `json:"flat_model"`
	FloorAreaSqm      string `json:"floor_area_sqm"`
	StreetName        string `json:"street_name"`
	ResalePrice       string `json:"resale_price"`
	Month             string `json:"month"`
	RemainingLease    string `json:"remaining_lease"`
	LeaseCommenceDate string `json:"lease_commence_date"`
	StoreyRange       string `json:"storey_range"`
	Block             string `json:"block"`
}

// Transaction is the enriched record: numeric columns coerced and the two
// derived columns computed. PricePerSqm and Date are set once, when the
// snapshot is built, and never recomputed by filtering.
type Transaction struct {
	Town              string
	FlatType          string
	FlatModel         string
	FloorAreaSqm      float64
	StreetName        string
	ResalePrice       float64
	Month             string
	RemainingLease    string
	LeaseCommenceDate string
	StoreyRange       string
	Block             string

	// PricePerSqm is ResalePrice / FloorAreaSqm rounded to 2 decimal
	// places; NaN when FloorAreaSqm is zero.
	PricePerSqm float64
	// Date is Month parsed as a calendar date (first of the month).
	Date time.Time
}

// SummaryReport holds the descriptive statistics computed over a view.
type SummaryReport struct {
	TotalRows       int
	MinResalePrice  float64
	MaxResalePrice  float64
	MeanResalePrice float64
	MeanPricePerSqm float64
	EarliestDate    time.Time
	LatestDate      time.Time
	RowsByTown      map[string]int
}
