package series

import "github.com/raykavin/chartsnap/core"

// Group is a view of a prepared series restricted to bars moving in one
// direction. Indexes holds the original plot index of each bar, so the
// renderer can place grouped bars on the shared axis.
type Group struct {
	Indexes []int
	Candles []core.Candle
}

// Len returns the number of bars in the group
func (g Group) Len() int {
	return len(g.Candles)
}

// Classify partitions a prepared series into "up" and "down" groups by
// comparing close to open. Bars that close where they opened count as
// up. Every bar lands in exactly one group; an empty group is valid.
func Classify(s *Series) (up, down Group) {
	for i, c := range s.Candles {
		if c.Close >= c.Open {
			up.Indexes = append(up.Indexes, i)
			up.Candles = append(up.Candles, c)
		} else {
			down.Indexes = append(down.Indexes, i)
			down.Candles = append(down.Candles, c)
		}
	}
	return up, down
}
