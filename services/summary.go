package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"resale-explorer/models"
	"resale-explorer/utils"
)

// SummaryService computes descriptive statistics over a set of transactions
// for interactive inspection. It is purely presentational — nothing in the
// filter surface depends on it.
type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

func (s *SummaryService) Generate(txs []models.Transaction) *models.SummaryReport {
	report := &models.SummaryReport{
		RowsByTown: make(map[string]int),
	}

	if len(txs) == 0 {
		return report
	}

	report.TotalRows = len(txs)
	report.MinResalePrice = txs[0].ResalePrice
	report.MaxResalePrice = txs[0].ResalePrice
	report.EarliestDate = txs[0].Date
	report.LatestDate = txs[0].Date

	var priceTotal float64
	var ppsTotal float64
	var ppsCount int

	for _, tx := range txs {
		priceTotal += tx.ResalePrice
		if tx.ResalePrice < report.MinResalePrice {
			report.MinResalePrice = tx.ResalePrice
		}
		if tx.ResalePrice > report.MaxResalePrice {
			report.MaxResalePrice = tx.ResalePrice
		}

		// NaN rows (zero floor area) are excluded from the mean
		if !math.IsNaN(tx.PricePerSqm) {
			ppsTotal += tx.PricePerSqm
			ppsCount++
		}

		if tx.Date.Before(report.EarliestDate) {
			report.EarliestDate = tx.Date
		}
		if tx.Date.After(report.LatestDate) {
			report.LatestDate = tx.Date
		}

		if tx.Town != "" {
			report.RowsByTown[tx.Town]++
		}
	}

	report.MeanResalePrice = round2(priceTotal / float64(len(txs)))
	if ppsCount > 0 {
		report.MeanPricePerSqm = round2(ppsTotal / float64(ppsCount))
	}

	return report
}

func (s *SummaryService) Print(r *models.SummaryReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  RESALE FLAT PRICES — CURRENT VIEW\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Transactions : \033[1m%d\033[0m\n", r.TotalRows)
	if r.TotalRows > 0 {
		fmt.Printf("  Period       : %s — %s\n",
			r.EarliestDate.Format("Jan 2006"), r.LatestDate.Format("Jan 2006"))
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Resale Price\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.TotalRows > 0 {
		fmt.Printf("  Mean    : \033[1;32m$%.2f\033[0m\n", r.MeanResalePrice)
		fmt.Printf("  Minimum : \033[1;32m$%.2f\033[0m\n", r.MinResalePrice)
		fmt.Printf("  Maximum : \033[1;32m$%.2f\033[0m\n", r.MaxResalePrice)
		fmt.Printf("  Mean price/sqm : \033[1;32m$%.2f\033[0m\n", r.MeanPricePerSqm)
	} else {
		fmt.Printf("  No transactions in view\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Transactions by Town\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.RowsByTown) == 0 {
		fmt.Printf("  No town data\n")
	} else {
		type townCount struct {
			town  string
			count int
		}
		var towns []townCount
		for town, cnt := range r.RowsByTown {
			towns = append(towns, townCount{town, cnt})
		}
		sort.Slice(towns, func(i, j int) bool {
			if towns[i].count != towns[j].count {
				return towns[i].count > towns[j].count
			}
			return towns[i].town < towns[j].town
		})
		for _, tc := range towns {
			fmt.Printf("  %-28s %d\n", truncate(tc.town, 26), tc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
