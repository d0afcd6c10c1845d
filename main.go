package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"resale-explorer/config"
	"resale-explorer/explorer"
	"resale-explorer/services"
	"resale-explorer/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	logger.Info("=== Resale Flats Explorer starting ===")
	logger.Info("Config — partitions: %d | limit: %d | concurrency: %d | rate: %dms",
		len(cfg.ResourceIDs), cfg.FetchLimit, cfg.MaxConcurrency, cfg.RateLimitMs)

	exp, err := explorer.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Snapshot build failed: %v", err)
		os.Exit(1)
	}

	logger.Info("Snapshot ready: %d transactions across %d towns",
		len(exp.Snapshot()), len(exp.Snapshot().Towns()))

	exp.Show(explorer.DefaultShowRows)

	// Narrow to two east-side towns in 2020, then inspect the result
	exp.FilterByTown([]string{"BEDOK", "TAMPINES"})
	exp.FilterByTime(
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC),
	)

	logger.Info("Filtered view: %d transactions — towns: %v", len(exp.Current()), exp.Towns())
	exp.Show(explorer.DefaultShowRows)

	summarySvc := services.NewSummaryService(logger)
	summarySvc.Print(summarySvc.Generate(exp.Current()))

	exp.Reset()
	logger.Info("View reset — back to %d transactions", len(exp.Current()))

	fmt.Println("  Done.")
}
