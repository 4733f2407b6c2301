package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeries_Last(t *testing.T) {
	s := Series[float64]{1, 2, 3, 4}
	require.Equal(t, 4.0, s.Last(0))
	require.Equal(t, 3.0, s.Last(1))
	require.Equal(t, 1.0, s.Last(3))
}

func TestSeries_ValuesAndLength(t *testing.T) {
	s := Series[float64]{1, 2, 3}
	require.Equal(t, 3, s.Length())
	require.Equal(t, []float64{1, 2, 3}, s.Values())
	require.Zero(t, Series[float64]{}.Length())
}
