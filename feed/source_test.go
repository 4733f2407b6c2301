package feed

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolFromIdentifier(t *testing.T) {
	require.Equal(t, "TQQQ", SymbolFromIdentifier("data/tqqq.txt"))
	require.Equal(t, "SPY", SymbolFromIdentifier("spy.csv"))
	require.Equal(t, "BTCUSDT", SymbolFromIdentifier("BTCUSDT"))
	require.Equal(t, "MSFT", SymbolFromIdentifier("/tmp/quotes/msft"))
}

func TestOutputPath(t *testing.T) {
	require.Equal(t, "data/tqqq_chart.png", OutputPath("data/tqqq.txt"))
	require.Equal(t, "TQQQ_chart.png", OutputPath("TQQQ"))
	require.Equal(t, "spy_chart.png", OutputPath("spy.csv"))
}

func TestIsCryptoPair(t *testing.T) {
	require.True(t, isCryptoPair("BTCUSDT"))
	require.True(t, isCryptoPair("ETHUSDC"))
	require.False(t, isCryptoPair("TQQQ"))
	require.False(t, isCryptoPair("USDT")) // bare quote is not a pair
	require.False(t, isCryptoPair("AAPL"))
}

func TestSelect_ExistingFile(t *testing.T) {
	file := writeDataFile(t, "tqqq.txt",
		`2023-02-01,00:00:00,5,6,4,5.5,100,0
`)

	src := Select(file, nil, testLogger(t))
	require.IsType(t, &CSVSource{}, src)
	require.Equal(t, "TQQQ", src.Symbol())
}

func TestSelect_MissingFileGoesRemote(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "tqqq.txt")

	src := Select(missing, nil, testLogger(t))
	require.IsType(t, &YahooSource{}, src)
	require.Equal(t, "TQQQ", src.Symbol())
}

func TestSelect_CryptoPairGoesToBinance(t *testing.T) {
	src := Select("BTCUSDT", nil, testLogger(t))
	require.IsType(t, &BinanceSource{}, src)
	require.Equal(t, "BTCUSDT", src.Symbol())
}

func TestSelect_RemoteSourceGetsCache(t *testing.T) {
	cache, err := OpenCache(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	src := Select("BTCUSDT", cache, testLogger(t))
	require.IsType(t, &cachedSource{}, src)
}
