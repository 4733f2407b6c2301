package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raykavin/chartsnap"
	"github.com/raykavin/chartsnap/series"
)

// Command line flags
var (
	years         float64
	window        int
	timeframe     string
	outputFile    string
	cachePath     string
	showSummary   bool
	telegramToken string
	telegramChat  int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chartsnap <data-source>",
		Short: "Render a candlestick chart snapshot with an SMA trend overlay",
		Long: "Renders a dual-pane candlestick and volume chart from a local data file.\n" +
			"When the file does not exist, its base name is treated as a ticker and\n" +
			"a trailing two-year daily series is fetched remotely.",
		Version: "1.0.0",
		Args:    cobra.ExactArgs(1),
		RunE:    runChart,
	}

	rootCmd.Flags().Float64VarP(&years, "years", "y", series.DefaultYears, "Lookback horizon in years (fractional values allowed)")
	rootCmd.Flags().IntVarP(&window, "window", "w", series.DefaultWindow, "Moving average window size")
	rootCmd.Flags().StringVarP(&timeframe, "timeframe", "t", "", "Source timeframe of file rows (e.g. 5m); sub-daily rows are resampled to daily")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output image path (default <base>_chart.png)")
	rootCmd.Flags().StringVar(&cachePath, "cache", "", "Quote cache file for remote fetches (e.g. ./chartsnap.db)")
	rootCmd.Flags().BoolVarP(&showSummary, "summary", "s", false, "Print a series summary and returns histogram")
	rootCmd.Flags().StringVar(&telegramToken, "telegram-token", "", "Telegram bot token for chart delivery")
	rootCmd.Flags().Int64Var(&telegramChat, "telegram-chat", 0, "Telegram chat id for chart delivery")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runChart(cmd *cobra.Command, args []string) error {
	return chartsnap.Run(cmd.Context(), chartsnap.Config{
		Identifier:     args[0],
		OutputPath:     outputFile,
		Window:         window,
		Years:          years,
		Timeframe:      timeframe,
		CachePath:      cachePath,
		ShowSummary:    showSummary,
		TelegramToken:  telegramToken,
		TelegramChatID: telegramChat,
	})
}
