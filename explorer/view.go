package explorer

import (
	"sort"
	"time"

	"resale-explorer/models"
)

// View is an immutable ordered subsequence of the snapshot. Filter methods
// never modify the receiver; each returns a derived View, so "current" is
// whichever reference the caller holds.
type View []models.Transaction

// FilterByTown keeps rows whose town is a member of towns. Matching is
// exact; an empty towns set, or one with no matches, yields an empty view.
func (v View) FilterByTown(towns []string) View {
	allowed := toSet(towns)
	out := make(View, 0, len(v))
	for _, tx := range v {
		if allowed[tx.Town] {
			out = append(out, tx)
		}
	}
	return out
}

// FilterByFlatType keeps rows whose flat type is a member of flatTypes.
// Same edge-case rules as FilterByTown.
func (v View) FilterByFlatType(flatTypes []string) View {
	allowed := toSet(flatTypes)
	out := make(View, 0, len(v))
	for _, tx := range v {
		if allowed[tx.FlatType] {
			out = append(out, tx)
		}
	}
	return out
}

// FilterByTime keeps rows whose date lies within [start, end] inclusive.
// A zero start means no lower bound and a zero end means no upper bound, so
// two zero values yield no narrowing. start after end naturally yields an
// empty view — no explicit validation.
func (v View) FilterByTime(start, end time.Time) View {
	out := make(View, 0, len(v))
	for _, tx := range v {
		if !start.IsZero() && tx.Date.Before(start) {
			continue
		}
		if !end.IsZero() && tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Towns returns the distinct town values present in this view, sorted
// ascending.
func (v View) Towns() []string {
	seen := make(map[string]struct{})
	towns := make([]string, 0)
	for _, tx := range v {
		if _, ok := seen[tx.Town]; !ok {
			seen[tx.Town] = struct{}{}
			towns = append(towns, tx.Town)
		}
	}
	sort.Strings(towns)
	return towns
}

// Head returns the first n rows in current order. n <= 0 yields an empty
// view; n beyond the view length yields the whole view.
func (v View) Head(n int) View {
	if n <= 0 {
		return View{}
	}
	if n > len(v) {
		n = len(v)
	}
	return v[:n]
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
