package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonthTicks_BoundariesAndForcedStart(t *testing.T) {
	// Daily bars 2023-11-01 .. 2024-02-15: month boundaries land at
	// indices 30 (Dec), 61 (Jan) and 92 (Feb). The first boundary sits
	// beyond index 20, so a tick is forced at index 0 as well.
	s, err := Prepare("TEST", buildCandles(day(2023, time.November, 1), 107), 5, 100)
	require.NoError(t, err)

	ticks := MonthTicks(s)
	require.Equal(t, []Tick{
		{Index: 0, Month: "Nov"},
		{Index: 30, Month: "Dec"},
		{Index: 61, Month: "Jan", Year: "2024"},
		{Index: 92, Month: "Feb"},
	}, ticks)
}

func TestMonthTicks_NoForcedStartWhenBoundaryIsNear(t *testing.T) {
	// Start late in November so the first boundary lands at index 11
	s, err := Prepare("TEST", buildCandles(day(2023, time.November, 20), 40), 5, 100)
	require.NoError(t, err)

	ticks := MonthTicks(s)
	require.Equal(t, 11, ticks[0].Index)
	require.Equal(t, "Dec", ticks[0].Month)
}

func TestMonthTicks_SingleMonth(t *testing.T) {
	s, err := Prepare("TEST", buildCandles(day(2023, time.June, 5), 15), 5, 100)
	require.NoError(t, err)

	ticks := MonthTicks(s)
	require.Equal(t, []Tick{{Index: 0, Month: "Jun"}}, ticks)
}

func TestMonthTicks_JanuaryAtStartShowsYear(t *testing.T) {
	// A first tick in January has no predecessor, so the year shows
	s, err := Prepare("TEST", buildCandles(day(2024, time.January, 2), 15), 5, 100)
	require.NoError(t, err)

	ticks := MonthTicks(s)
	require.Equal(t, []Tick{{Index: 0, Month: "Jan", Year: "2024"}}, ticks)
}

func TestMonthTicks_EmptySeries(t *testing.T) {
	// A directly constructed series with no bars yields no ticks
	require.Empty(t, MonthTicks(&Series{}))
}

func TestMonthTicks_NonJanuaryBoundaryHasNoYear(t *testing.T) {
	s, err := Prepare("TEST", buildCandles(day(2023, time.June, 25), 20), 5, 100)
	require.NoError(t, err)

	for _, tick := range MonthTicks(s) {
		require.Empty(t, tick.Year)
	}
}
