package chartsnap

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"

	"github.com/raykavin/chartsnap/core"
	"github.com/raykavin/chartsnap/series"
)

// printSummary writes a stats table for the prepared series and an
// ASCII histogram of daily returns
func printSummary(w io.Writer, s *series.Series, trend *series.TrendStatus) {
	last := s.Last()

	trendLabel := "n/a"
	if trend != nil {
		trendLabel = trend.Label
	}

	maLabel := "n/a"
	if ma, ok := s.LastMA(); ok {
		maLabel = strconv.FormatFloat(ma, 'f', 2, 64)
	}

	returns := dailyReturns(s)

	// Too few bars leave the return stats undefined
	avgLabel, volLabel := "n/a", "n/a"
	if returns.Length() > 0 {
		avgLabel = strconv.FormatFloat(stat.Mean(returns.Values(), nil), 'f', 3, 64)
	}
	if returns.Length() > 1 {
		volLabel = strconv.FormatFloat(stat.StdDev(returns.Values(), nil), 'f', 3, 64)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Symbol", "Bars", "Last Close", fmt.Sprintf("SMA(%d)", s.Window), "Trend", "Avg Ret %", "Vol %"})
	table.Append([]string{
		s.Symbol,
		strconv.Itoa(s.Len()),
		strconv.FormatFloat(last.Close, 'f', 2, 64),
		maLabel,
		trendLabel,
		avgLabel,
		volLabel,
	})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	table.Render()

	if returns.Length() < 2 {
		return
	}

	fmt.Fprintln(w, "-- daily returns (%) --")
	hist := histogram.Hist(15, returns.Values())
	if err := histogram.Fprint(w, hist, histogram.Linear(10)); err != nil {
		DefaultLog.WithError(err).Warn("failed to print returns histogram")
	}
}

// dailyReturns computes close-to-close percentage returns
func dailyReturns(s *series.Series) core.Series[float64] {
	returns := make(core.Series[float64], 0, s.Len())
	for i := 1; i < s.Len(); i++ {
		prev := s.Candles[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (s.Candles[i].Close-prev)/prev*100)
	}
	return returns
}
