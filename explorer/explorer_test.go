package explorer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resale-explorer/models"
	"resale-explorer/utils"
)

func tx(town, flatType, month string) models.Transaction {
	date, err := time.Parse("2006-01", month)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		Town:         town,
		FlatType:     flatType,
		FlatModel:    "Improved",
		Month:        month,
		Date:         date,
		FloorAreaSqm: 90,
		ResalePrice:  450000,
		PricePerSqm:  5000,
		StoreyRange:  "04 TO 06",
	}
}

func fixture() []models.Transaction {
	return []models.Transaction{
		tx("BEDOK", "3 ROOM", "2019-05"),
		tx("BEDOK", "4 ROOM", "2020-02"),
		tx("TAMPINES", "4 ROOM", "2020-07"),
		tx("TAMPINES", "5 ROOM", "2021-01"),
		tx("CLEMENTI", "3 ROOM", "2020-12"),
		tx("CLEMENTI", "EXECUTIVE", "2018-11"),
		tx("BEDOK", "4 ROOM", "2020-02"), // duplicate rows are legal
	}
}

func newExplorer() *Explorer {
	return New(fixture(), utils.NewLogger())
}

func TestFilterByTownKeepsOnlyMembers(t *testing.T) {
	e := newExplorer()
	view := e.FilterByTown([]string{"BEDOK"})

	require.Len(t, view, 3)
	for _, row := range view {
		assert.Equal(t, "BEDOK", row.Town)
	}
}

func TestFilterByTownIsIdempotent(t *testing.T) {
	e := newExplorer()
	first := e.FilterByTown([]string{"BEDOK", "TAMPINES"})

	// same set, then a superset of towns already present — both no-ops
	again := e.FilterByTown([]string{"BEDOK", "TAMPINES"})
	assert.Equal(t, len(first), len(again))

	superset := e.FilterByTown([]string{"BEDOK", "TAMPINES", "YISHUN"})
	assert.Equal(t, len(first), len(superset))
}

func TestEmptyFilterSetsYieldEmptyViews(t *testing.T) {
	e := newExplorer()
	assert.Empty(t, e.FilterByTown(nil))

	e.Reset()
	assert.Empty(t, e.FilterByFlatType([]string{}))

	e.Reset()
	assert.Empty(t, e.FilterByTown([]string{"ATLANTIS"}))
}

func TestFilterByFlatType(t *testing.T) {
	e := newExplorer()
	view := e.FilterByFlatType([]string{"4 ROOM"})

	require.Len(t, view, 3)
	for _, row := range view {
		assert.Equal(t, "4 ROOM", row.FlatType)
	}
}

func TestFilterByTimeNoBoundsIsNoOp(t *testing.T) {
	e := newExplorer()
	view := e.FilterByTime(time.Time{}, time.Time{})

	assert.Equal(t, View(fixture()), view)
}

func TestFilterByTimeInclusiveBounds(t *testing.T) {
	e := newExplorer()
	feb := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)

	// start == end keeps rows dated exactly on the bound
	view := e.FilterByTime(feb, feb)
	require.Len(t, view, 2)
	for _, row := range view {
		assert.Equal(t, "2020-02", row.Month)
	}
}

func TestFilterByTimeOpenEnds(t *testing.T) {
	e := newExplorer()
	start := time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC)

	view := e.FilterByTime(start, time.Time{})
	require.Len(t, view, 3)
	for _, row := range view {
		assert.False(t, row.Date.Before(start))
	}

	e.Reset()
	end := time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC)
	view = e.FilterByTime(time.Time{}, end)
	require.Len(t, view, 2)
	for _, row := range view {
		assert.False(t, row.Date.After(end))
	}
}

func TestFilterByTimeStartAfterEndYieldsEmpty(t *testing.T) {
	e := newExplorer()
	view := e.FilterByTime(
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	assert.Empty(t, view)
}

func TestFiltersAccumulate(t *testing.T) {
	e := newExplorer()
	e.FilterByTown([]string{"BEDOK", "TAMPINES"})
	view := e.FilterByFlatType([]string{"4 ROOM"})

	require.Len(t, view, 3)
	assert.Equal(t, view, e.Current())
}

func TestResetRestoresSnapshot(t *testing.T) {
	e := newExplorer()
	e.FilterByTown([]string{"BEDOK"})
	e.FilterByFlatType([]string{"4 ROOM"})
	e.FilterByTime(time.Time{}, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, e.Current())

	e.Reset()
	assert.Equal(t, View(fixture()), e.Current())
	assert.Equal(t, e.Snapshot(), e.Current())
}

func TestTownsReflectsCurrentViewNotSnapshot(t *testing.T) {
	e := newExplorer()
	assert.Equal(t, []string{"BEDOK", "CLEMENTI", "TAMPINES"}, e.Towns())

	e.FilterByTown([]string{"BEDOK"})
	assert.Equal(t, []string{"BEDOK"}, e.Towns())

	// the snapshot still answers with the full list
	assert.Equal(t, []string{"BEDOK", "CLEMENTI", "TAMPINES"}, e.Snapshot().Towns())
}

func TestViewFiltersDoNotMutateParent(t *testing.T) {
	snapshot := View(fixture())
	_ = snapshot.FilterByTown([]string{"BEDOK"})
	_ = snapshot.FilterByTime(time.Time{}, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, View(fixture()), snapshot)
}

func TestHead(t *testing.T) {
	big := make([]models.Transaction, 0, 1000)
	for i := 0; i < 1000; i++ {
		row := tx("BEDOK", "4 ROOM", "2020-01")
		row.Block = fmt.Sprintf("%d", i)
		big = append(big, row)
	}
	view := View(big)

	head := view.Head(5)
	require.Len(t, head, 5)
	for i, row := range head {
		assert.Equal(t, fmt.Sprintf("%d", i), row.Block)
	}

	assert.Empty(t, view.Head(0))
	assert.Empty(t, view.Head(-3))
	assert.Len(t, view.Head(2000), 1000)
}

func TestShowRendersFirstNRows(t *testing.T) {
	e := newExplorer()
	var buf bytes.Buffer
	e.SetOutput(&buf)

	e.Show(DefaultShowRows)
	out := buf.String()

	assert.Contains(t, out, "(5 of 7 rows)")
	// header + divider + 5 rows + footer
	lines := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	assert.Equal(t, 8, lines)
	assert.Contains(t, out, "2019-05") // first row of the current view
}

func TestFilterOrderIsIrrelevantForIndependentPredicates(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	towns := []string{"BEDOK", "TAMPINES"}

	a := newExplorer()
	a.FilterByTown(towns)
	a.FilterByTime(start, end)

	b := newExplorer()
	b.FilterByTime(start, end)
	b.FilterByTown(towns)

	assert.Equal(t, a.Current(), b.Current())

	// and both match a single conjoined pass over the snapshot
	var conjoined int
	for _, row := range fixture() {
		inTown := row.Town == "BEDOK" || row.Town == "TAMPINES"
		inRange := !row.Date.Before(start) && !row.Date.After(end)
		if inTown && inRange {
			conjoined++
		}
	}
	assert.Equal(t, conjoined, len(a.Current()))
}
