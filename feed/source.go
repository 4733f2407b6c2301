// Package feed provides data sources for OHLCV bar series
package feed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raykavin/chartsnap/core"
)

var (
	// ErrMalformedInput is returned when a data file cannot be parsed
	ErrMalformedInput = errors.New("malformed input")

	// ErrEmptyResult is returned when a remote provider returns no bars
	ErrEmptyResult = errors.New("empty result")
)

// Source supplies the raw bar series for one instrument
type Source interface {
	Symbol() string
	Candles(ctx context.Context) ([]core.Candle, error)
}

// remoteLookback is how far back remote sources fetch daily bars
const remoteLookback = 2 * 365 * 24 * time.Hour

// Quote suffixes that mark an identifier as a crypto trading pair
var cryptoQuotes = []string{"USDT", "USDC", "BUSD", "FDUSD"}

// Select picks a source for the given data-source identifier by
// availability: a readable file becomes a CSV source, otherwise the
// identifier's base name becomes a ticker fetched remotely. Crypto-style
// pairs go to Binance, everything else to Yahoo Finance. Remote sources
// are wrapped with the quote cache when one is provided.
func Select(identifier string, cache *Cache, log core.Logger) Source {
	if _, err := os.Stat(identifier); err == nil {
		return NewCSVSource(identifier, "", log)
	}

	symbol := SymbolFromIdentifier(identifier)
	log.Infof("file %s not found, fetching %s remotely", identifier, symbol)

	var src Source
	if isCryptoPair(symbol) {
		src = NewBinanceSource(symbol, log)
	} else {
		src = NewYahooSource(symbol, log)
	}

	if cache != nil {
		src = WithCache(src, cache, DefaultCacheTTL, log)
	}
	return src
}

// SymbolFromIdentifier derives the instrument symbol from a data-source
// identifier, e.g. "data/tqqq.txt" -> "TQQQ"
func SymbolFromIdentifier(identifier string) string {
	base := filepath.Base(identifier)
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}

// OutputPath derives the chart artifact path from a data-source
// identifier, e.g. "data/tqqq.txt" -> "data/tqqq_chart.png"
func OutputPath(identifier string) string {
	return strings.TrimSuffix(identifier, filepath.Ext(identifier)) + "_chart.png"
}

func isCryptoPair(symbol string) bool {
	for _, quote := range cryptoQuotes {
		if len(symbol) > len(quote) && strings.HasSuffix(symbol, quote) {
			return true
		}
	}
	return false
}
