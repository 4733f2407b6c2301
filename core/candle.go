package core

import "time"

// MetadataOpenInterest is the metadata key under which open interest
// from CSV inputs is carried. It is not consumed by the chart pipeline.
const MetadataOpenInterest = "oi"

// Candle represents one OHLCV bar for a single trading interval
type Candle struct {
	Symbol string
	Time   time.Time
	Open   float64
	Close  float64
	Low    float64
	High   float64
	Volume float64

	// Additional columns from CSV inputs
	Metadata map[string]float64
}

// IsEmpty checks if the candle contains no significant data
func (c Candle) IsEmpty() bool { return c.Close == 0 && c.Open == 0 && c.Volume == 0 }

// Day returns the candle timestamp truncated to its calendar date in UTC
func (c Candle) Day() time.Time {
	y, m, d := c.Time.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
