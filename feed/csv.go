package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"

	"github.com/raykavin/chartsnap/core"
)

// Column layout used when the file carries no header row
var defaultColumns = map[string]int{
	"date": 0, "time": 1, "open": 2, "high": 3, "low": 4, "close": 5, "vol": 6, "oi": 7,
}

// Date layouts accepted for the Date column
var dateLayouts = []string{"2006-01-02", "01/02/2006", "2006/01/02"}

// CSVSource reads bars from a local tabular file with columns
// Date, Time, Open, High, Low, Close, Vol, OI. Quoted headers are
// tolerated and rows need not be pre-sorted.
type CSVSource struct {
	file      string
	symbol    string
	timeframe string
	log       core.Logger
}

// NewCSVSource creates a CSV source for the given file. timeframe is
// the interval of the file's rows; sub-daily rows are resampled to
// daily bars. An empty timeframe means the rows are already daily.
func NewCSVSource(file, timeframe string, log core.Logger) *CSVSource {
	if timeframe == "" {
		timeframe = "1d"
	}
	return &CSVSource{
		file:      file,
		symbol:    SymbolFromIdentifier(file),
		timeframe: timeframe,
		log:       log,
	}
}

// Symbol returns the instrument symbol derived from the file name
func (s *CSVSource) Symbol() string { return s.symbol }

// Candles reads and parses the file into bars
func (s *CSVSource) Candles(_ context.Context) ([]core.Candle, error) {
	csvFile, err := os.Open(s.file)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer csvFile.Close()

	lines, err := csv.NewReader(csvFile).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty file %s", ErrMalformedInput, s.file)
	}

	columns, hasHeader, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}
	if hasHeader {
		lines = lines[1:]
	}

	candles := make([]core.Candle, 0, len(lines))
	for i, line := range lines {
		candle, err := s.parseLine(line, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, i+1, err)
		}
		candles = append(candles, candle)
	}

	s.log.Debugf("loaded %d rows from %s", len(candles), s.file)

	return s.resampleDaily(candles)
}

// parseHeader returns the column index map. A first row whose first
// cell parses as a date is data, not a header, and the default layout
// applies.
func parseHeader(headers []string) (map[string]int, bool, error) {
	if _, err := parseDate(headers[0]); err == nil {
		return defaultColumns, false, nil
	}

	columns := make(map[string]int, len(headers))
	for index, header := range headers {
		name := strings.ToLower(strings.Trim(header, `" `))
		if name == "volume" {
			name = "vol"
		}
		columns[name] = index
	}

	for _, required := range []string{"date", "open", "high", "low", "close", "vol"} {
		if _, ok := columns[required]; !ok {
			return nil, false, fmt.Errorf("%w: missing column %q", ErrMalformedInput, required)
		}
	}

	return columns, true, nil
}

func (s *CSVSource) parseLine(line []string, columns map[string]int) (core.Candle, error) {
	if len(line) < len(columns) {
		return core.Candle{}, fmt.Errorf("expected %d fields, got %d", len(columns), len(line))
	}

	date, err := parseDate(strings.Trim(line[columns["date"]], `" `))
	if err != nil {
		return core.Candle{}, err
	}

	if idx, ok := columns["time"]; ok {
		if clock, err := time.Parse("15:04:05", strings.Trim(line[idx], `" `)); err == nil {
			date = date.Add(time.Duration(clock.Hour())*time.Hour +
				time.Duration(clock.Minute())*time.Minute +
				time.Duration(clock.Second())*time.Second)
		}
	}

	candle := core.Candle{
		Symbol: s.symbol,
		Time:   date,
	}

	if candle.Open, err = strconv.ParseFloat(line[columns["open"]], 64); err != nil {
		return core.Candle{}, err
	}
	if candle.High, err = strconv.ParseFloat(line[columns["high"]], 64); err != nil {
		return core.Candle{}, err
	}
	if candle.Low, err = strconv.ParseFloat(line[columns["low"]], 64); err != nil {
		return core.Candle{}, err
	}
	if candle.Close, err = strconv.ParseFloat(line[columns["close"]], 64); err != nil {
		return core.Candle{}, err
	}
	if candle.Volume, err = strconv.ParseFloat(line[columns["vol"]], 64); err != nil {
		return core.Candle{}, err
	}

	if idx, ok := columns["oi"]; ok && idx < len(line) {
		oi, err := strconv.ParseFloat(line[idx], 64)
		if err != nil {
			return core.Candle{}, err
		}
		candle.Metadata = map[string]float64{core.MetadataOpenInterest: oi}
	}

	return candle, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// resampleDaily aggregates sub-daily rows into one bar per calendar
// day: first open, max high, min low, last close, summed volume.
func (s *CSVSource) resampleDaily(candles []core.Candle) ([]core.Candle, error) {
	if s.timeframe == "1d" {
		return candles, nil
	}

	interval, err := str2duration.ParseDuration(s.timeframe)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timeframe %q: %v", ErrMalformedInput, s.timeframe, err)
	}
	if interval >= 24*time.Hour {
		return candles, nil
	}

	// Grouping below walks consecutive rows, so order them first
	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Time.Before(candles[j].Time)
	})

	daily := make([]core.Candle, 0, len(candles)/4)
	var current core.Candle
	inDay := false

	for _, candle := range candles {
		if inDay && candle.Day().Equal(current.Time) {
			current.High = math.Max(current.High, candle.High)
			current.Low = math.Min(current.Low, candle.Low)
			current.Close = candle.Close
			current.Volume += candle.Volume
			current.Metadata = candle.Metadata
			continue
		}

		if inDay {
			daily = append(daily, current)
		}
		current = candle
		current.Time = candle.Day()
		inDay = true
	}

	if inDay {
		daily = append(daily, current)
	}

	s.log.Debugf("resampled %d %s rows into %d daily bars", len(candles), s.timeframe, len(daily))
	return daily, nil
}
