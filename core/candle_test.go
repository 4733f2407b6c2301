package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCandle_Day(t *testing.T) {
	c := Candle{Time: time.Date(2023, time.March, 7, 15, 30, 45, 0, time.UTC)}
	require.Equal(t, time.Date(2023, time.March, 7, 0, 0, 0, 0, time.UTC), c.Day())

	// Zoned timestamps truncate to their UTC date
	zone := time.FixedZone("UTC+5", 5*3600)
	c = Candle{Time: time.Date(2023, time.March, 7, 2, 0, 0, 0, zone)}
	require.Equal(t, time.Date(2023, time.March, 6, 0, 0, 0, 0, time.UTC), c.Day())
}

func TestCandle_IsEmpty(t *testing.T) {
	require.True(t, Candle{}.IsEmpty())
	require.False(t, Candle{Close: 10}.IsEmpty())
	require.False(t, Candle{Open: 10}.IsEmpty())
	require.False(t, Candle{Volume: 100}.IsEmpty())
}
