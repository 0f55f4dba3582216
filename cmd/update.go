package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/subcommands"

	"github.com/dipwatch/stockwatch"
	"github.com/dipwatch/stockwatch/date"
	"github.com/dipwatch/stockwatch/renderer"
	"github.com/dipwatch/stockwatch/yahoo"
)

// updateCmd runs the daily cycle: fetch prices, upsert, save, report.
type updateCmd struct {
	date       string
	reportFile string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch today's closing prices and refresh the report" }
func (*updateCmd) Usage() string {
	return `swt update [-d <date>] [-o <report-file>]

  Fetches the closing price of every watch-list symbol from Yahoo Finance,
  records the observations, saves the tracking data and renders the daily
  report. A failed fetch for one symbol never aborts the others, and
  re-running the command for the same date replaces that day's observations
  instead of duplicating them.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date to record the observations under (defaults to today)")
	f.StringVar(&c.reportFile, "o", "stock_data/daily_report.md", "File to write the markdown report to (empty to skip)")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on := date.Today()
	if c.date != "" {
		var err error
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	log := newLogger()
	defer log.Sync()

	store, err := loadStore()
	if err != nil {
		return fail(err)
	}

	log.Infof("updating %d symbols for %s", store.Watchlist().Len(), on)
	result, err := store.UpdateAll(yahoo.New(), on)
	if err != nil {
		return fail(err)
	}
	for _, symbol := range result.Updated {
		obs, _ := store.Latest(symbol)
		log.Infow("updated", "symbol", symbol, "price", obs.Price, "change", obs.ChangePct.String())
	}
	for _, symbol := range result.FailedSymbols() {
		log.Warnw("fetch failed", "symbol", symbol, "err", result.Failed[symbol])
	}

	if err := saveStore(store); err != nil {
		return fail(err)
	}
	log.Infof("tracking data saved to %s", *dataFile)

	report, err := store.Report(time.Now(), result.FailedSymbols())
	if err != nil {
		return fail(err)
	}
	md := renderer.TrackingMarkdown(report)
	printMarkdown(md)

	if c.reportFile != "" {
		if err := writeReport(c.reportFile, md); err != nil {
			return fail(err)
		}
		log.Infof("report written to %s", c.reportFile)
	}
	return subcommands.ExitSuccess
}

// writeReport stores the rendered report; plain write, the report is
// regenerated from the store at will.
func writeReport(path, md string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return fmt.Errorf("cannot write report %q: %w", path, err)
	}
	return nil
}

var _ stockwatch.Quoter = (*yahoo.Provider)(nil)
