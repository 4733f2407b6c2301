package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raykavin/chartsnap/core"
)

func TestClassify_Partition(t *testing.T) {
	candles := []core.Candle{
		{Time: day(2023, time.May, 1), Open: 10, Close: 11}, // up
		{Time: day(2023, time.May, 2), Open: 11, Close: 9},  // down
		{Time: day(2023, time.May, 3), Open: 9, Close: 9},   // tie counts as up
		{Time: day(2023, time.May, 4), Open: 9, Close: 12},  // up
		{Time: day(2023, time.May, 5), Open: 12, Close: 10}, // down
	}

	s, err := Prepare("TEST", candles, 2, 100)
	require.NoError(t, err)

	up, down := Classify(s)
	require.Equal(t, []int{0, 2, 3}, up.Indexes)
	require.Equal(t, []int{1, 4}, down.Indexes)

	// The groups partition the series: disjoint, union covers every bar
	require.Equal(t, s.Len(), up.Len()+down.Len())
	seen := make(map[int]bool)
	for _, i := range append(up.Indexes, down.Indexes...) {
		require.False(t, seen[i])
		seen[i] = true
	}
}

func TestClassify_AllDown(t *testing.T) {
	candles := []core.Candle{
		{Time: day(2023, time.May, 1), Open: 10, Close: 9},
		{Time: day(2023, time.May, 2), Open: 9, Close: 8},
	}

	s, err := Prepare("TEST", candles, 2, 100)
	require.NoError(t, err)

	up, down := Classify(s)
	require.Zero(t, up.Len())
	require.Equal(t, 2, down.Len())
}
