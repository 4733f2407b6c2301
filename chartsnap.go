// Package chartsnap renders a dual-pane candlestick and volume chart
// with a moving-average overlay and trend annotation from an OHLCV
// series, loaded from a local file or fetched remotely.
package chartsnap

import (
	"bytes"
	"context"
	"os"

	"github.com/raykavin/chartsnap/chart"
	"github.com/raykavin/chartsnap/core"
	"github.com/raykavin/chartsnap/feed"
	"github.com/raykavin/chartsnap/notification"
	"github.com/raykavin/chartsnap/series"
)

// DefaultLog is the default logger instance
var DefaultLog core.Logger

// Config holds one invocation of the pipeline
type Config struct {
	// Identifier is the data-source identifier: a local file path or a
	// ticker-bearing name such as "tqqq.txt"
	Identifier string

	// OutputPath overrides the derived "<base>_chart.png" artifact path
	OutputPath string

	// Window is the moving average window size
	Window int

	// Years is the lookback horizon; fractional years are permitted
	Years float64

	// Timeframe is the interval of local file rows ("" or "1d" for daily)
	Timeframe string

	// CachePath enables the remote quote cache when non-empty
	CachePath string

	// ShowSummary prints a stats table and returns histogram on stdout
	ShowSummary bool

	// TelegramToken and TelegramChatID enable chart delivery via Telegram
	TelegramToken  string
	TelegramChatID int64
}

// Run executes the full pipeline: load, prepare, classify, label,
// render, save. Any error is terminal; no artifact is written unless
// the whole image composed successfully.
func Run(ctx context.Context, cfg Config) error {
	log := DefaultLog

	if cfg.Window <= 0 {
		cfg.Window = series.DefaultWindow
	}
	if cfg.Years <= 0 {
		cfg.Years = series.DefaultYears
	}

	var cache *feed.Cache
	if cfg.CachePath != "" {
		var err error
		if cache, err = feed.OpenCache(cfg.CachePath); err != nil {
			return err
		}
		defer cache.Close()
	}

	src := selectSource(cfg, cache, log)

	candles, err := src.Candles(ctx)
	if err != nil {
		return err
	}

	prepared, err := series.Prepare(src.Symbol(), candles, cfg.Window, cfg.Years)
	if err != nil {
		return err
	}
	log.Debugf("prepared %d bars for %s", prepared.Len(), prepared.Symbol)

	scene := chart.Compose(prepared)

	// Compose the full image in memory before touching the filesystem,
	// so a failed render leaves no partial artifact
	var buf bytes.Buffer
	if err := chart.Render(scene, &buf); err != nil {
		return err
	}

	output := cfg.OutputPath
	if output == "" {
		output = feed.OutputPath(cfg.Identifier)
	}

	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Infof("chart saved to %s", output)

	if cfg.ShowSummary {
		printSummary(os.Stdout, prepared, scene.Trend)
	}

	if cfg.TelegramToken != "" {
		telegram, err := notification.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			return err
		}
		if err := telegram.SendChart(output, prepared.Symbol); err != nil {
			return err
		}
	}

	return nil
}

func selectSource(cfg Config, cache *feed.Cache, log core.Logger) feed.Source {
	if cfg.Timeframe != "" && cfg.Timeframe != "1d" {
		return feed.NewCSVSource(cfg.Identifier, cfg.Timeframe, log)
	}
	return feed.Select(cfg.Identifier, cache, log)
}
