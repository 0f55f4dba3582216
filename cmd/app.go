// Package cmd implements the CLI application driving the tracker.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dipwatch/stockwatch"
)

// Commands lists the subcommands a main package registers.
var Commands = []subcommands.Command{
	&updateCmd{},
	&reportCmd{},
	&addCmd{},
	&chartsCmd{},
	&watchlistCmd{},
}

// As a CLI application with a very short lifecycle, global flags are fine.

var dataFile = flag.String("data-file", "stock_data/tracking_data.json", "Path to the tracking data file")
var watchlistFile = flag.String("watchlist", "", "Path to a YAML watch list (built-in default list when empty)")

// loadWatchlist loads the configured watch list, or the built-in default.
func loadWatchlist() (*stockwatch.Watchlist, error) {
	return stockwatch.LoadWatchlist(*watchlistFile)
}

// loadStore opens the tracking store seeded with the watch list. A missing
// data file yields a fresh store; a corrupted one is a fatal startup error.
func loadStore() (*stockwatch.Store, error) {
	w, err := loadWatchlist()
	if err != nil {
		return nil, err
	}
	return stockwatch.LoadStore(*dataFile, w)
}

// saveStore persists the store atomically to the configured data file.
func saveStore(s *stockwatch.Store) error {
	return stockwatch.SaveStore(*dataFile, s)
}

// newLogger builds the console logger used for run progress.
func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		// The development config cannot fail to build; keep a fallback anyway.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// printMarkdown renders markdown for the terminal. If rendering fails the
// raw markdown is still printed; the report must never be lost to styling.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
