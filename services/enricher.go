package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"resale-explorer/client/datagov"
	"resale-explorer/models"
	"resale-explorer/utils"
)

// monthLayout is the fixed year-month format of the upstream month column.
const monthLayout = "2006-01"

// Enricher coerces fetched RawRecords into Transactions and computes the
// two derived columns. Enrichment happens once, when the snapshot is built.
type Enricher struct {
	logger *utils.Logger
}

// NewEnricher creates an Enricher with the given logger.
func NewEnricher(logger *utils.Logger) *Enricher {
	return &Enricher{logger: logger}
}

// Enrich converts raw records into Transactions. There is no per-row error
// isolation: the first value that fails numeric or date coercion fails the
// whole operation. A zero floor area does not error — the derived
// price-per-sqm becomes NaN instead.
func (e *Enricher) Enrich(raw []models.RawRecord) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, len(raw))

	for i, r := range raw {
		price, err := parseNumeric(r.ResalePrice)
		if err != nil {
			return nil, &datagov.ParseError{
				Err: fmt.Errorf("row %d: resale_price %q: %w", i, r.ResalePrice, err),
			}
		}

		area, err := parseNumeric(r.FloorAreaSqm)
		if err != nil {
			return nil, &datagov.ParseError{
				Err: fmt.Errorf("row %d: floor_area_sqm %q: %w", i, r.FloorAreaSqm, err),
			}
		}

		date, err := time.Parse(monthLayout, strings.TrimSpace(r.Month))
		if err != nil {
			return nil, &datagov.ParseError{
				Err: fmt.Errorf("row %d: month %q: %w", i, r.Month, err),
			}
		}

		out = append(out, models.Transaction{
			Town:              r.Town,
			FlatType:          r.FlatType,
			FlatModel:         r.FlatModel,
			FloorAreaSqm:      area,
			StreetName:        r.StreetName,
			ResalePrice:       price,
			Month:             r.Month,
			RemainingLease:    r.RemainingLease,
			LeaseCommenceDate: r.LeaseCommenceDate,
			StoreyRange:       r.StoreyRange,
			Block:             r.Block,

			PricePerSqm: pricePerSqm(price, area),
			Date:        date,
		})
	}

	e.logger.Info("[enricher] Enriched %d records (price_per_sqm, date)", len(out))
	return out, nil
}

// pricePerSqm derives the unit price rounded to 2 decimal places. Zero
// floor area yields NaN rather than an error.
func pricePerSqm(price, area float64) float64 {
	if area == 0 {
		return math.NaN()
	}
	return decimal.NewFromFloat(price / area).Round(2).InexactFloat64()
}

func parseNumeric(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
