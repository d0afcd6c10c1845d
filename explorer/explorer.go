package explorer

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"resale-explorer/client/datagov"
	"resale-explorer/config"
	"resale-explorer/models"
	"resale-explorer/services"
	"resale-explorer/utils"
)

// DefaultShowRows is how many rows Show renders when callers have no
// particular preference.
const DefaultShowRows = 5

// Explorer pairs the immutable snapshot with a working view. Successive
// filter calls narrow the working view in place (each reassigns the handle
// to a derived View); Reset restores it to the snapshot. Not safe for
// concurrent use — each instance owns its own state.
type Explorer struct {
	logger   *utils.Logger
	out      io.Writer
	snapshot View
	view     View
}

// Build is the blocking factory: fetch every partition, enrich, snapshot.
// It fails fast — any FetchError or ParseError aborts construction, with no
// retries and no partial dataset.
func Build(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*Explorer, error) {
	client := datagov.New(cfg, logger)
	raw, err := client.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	txs, err := services.NewEnricher(logger).Enrich(raw)
	if err != nil {
		return nil, err
	}

	return New(txs, logger), nil
}

// New wraps an already-enriched snapshot. The working view starts equal to
// the snapshot.
func New(txs []models.Transaction, logger *utils.Logger) *Explorer {
	snap := View(txs)
	return &Explorer{
		logger:   logger,
		out:      os.Stdout,
		snapshot: snap,
		view:     snap,
	}
}

// SetOutput redirects Show's rendering, which goes to stdout by default.
func (e *Explorer) SetOutput(w io.Writer) {
	e.out = w
}

// Snapshot returns the original, unfiltered dataset.
func (e *Explorer) Snapshot() View { return e.snapshot }

// Current returns the working view.
func (e *Explorer) Current() View { return e.view }

// FilterByTown narrows the working view to the given towns.
func (e *Explorer) FilterByTown(towns []string) View {
	e.view = e.view.FilterByTown(towns)
	e.logger.Debug("[explorer] FilterByTown(%v) → %d rows", towns, len(e.view))
	return e.view
}

// FilterByFlatType narrows the working view to the given flat types.
func (e *Explorer) FilterByFlatType(flatTypes []string) View {
	e.view = e.view.FilterByFlatType(flatTypes)
	e.logger.Debug("[explorer] FilterByFlatType(%v) → %d rows", flatTypes, len(e.view))
	return e.view
}

// FilterByTime narrows the working view to dates within [start, end]
// inclusive; zero bounds are open on that side.
func (e *Explorer) FilterByTime(start, end time.Time) View {
	e.view = e.view.FilterByTime(start, end)
	e.logger.Debug("[explorer] FilterByTime(%v, %v) → %d rows", start, end, len(e.view))
	return e.view
}

// Reset discards accumulated filters and restores the working view to the
// snapshot. The snapshot itself is never touched.
func (e *Explorer) Reset() {
	e.view = e.snapshot
	e.logger.Debug("[explorer] Reset → %d rows", len(e.view))
}

// Towns returns the distinct towns of the *current working view*, not the
// snapshot: a caller who filters first sees a narrowed town list. Use
// Snapshot().Towns() for the full list.
func (e *Explorer) Towns() []string {
	return e.view.Towns()
}

// Show renders the first n rows of the working view in current order.
func (e *Explorer) Show(n int) {
	rows := e.view.Head(n)

	fmt.Fprintf(e.out, "\n  %-8s %-16s %-10s %-18s %-8s %9s %12s %10s\n",
		"MONTH", "TOWN", "TYPE", "MODEL", "STOREY", "AREA SQM", "PRICE", "$/SQM")
	fmt.Fprintf(e.out, "  %s\n", divider)

	for _, tx := range rows {
		fmt.Fprintf(e.out, "  %-8s %-16s %-10s %-18s %-8s %9.1f %12.2f %10.2f\n",
			tx.Month,
			clip(tx.Town, 16),
			clip(tx.FlatType, 10),
			clip(tx.FlatModel, 18),
			clip(tx.StoreyRange, 8),
			tx.FloorAreaSqm,
			tx.ResalePrice,
			tx.PricePerSqm)
	}

	fmt.Fprintf(e.out, "  (%d of %d rows)\n\n", len(rows), len(e.view))
}

const divider = "────────────────────────────────────────────────────────────────────────────────────────────"

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
