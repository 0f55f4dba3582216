package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"github.com/dipwatch/stockwatch/date"
)

// addCmd records a single observation by hand, for days when the provider
// has no quote or for backfilling history.
type addCmd struct {
	date string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record one closing price manually" }
func (*addCmd) Usage() string {
	return `swt add [-d <date>] <symbol> <price>

  Records a closing price for one symbol. The first price ever recorded for
  a symbol becomes its baseline. Recording the same date again replaces the
  previous observation. A symbol outside the watch list is tracked with
  placeholder metadata.

Usage Examples:
# Record today's close for ICBC.
$ swt add 1398.HK 4.83

# Backfill a past date.
$ swt add -d 2024-01-02 1398.HK 4.61
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the observation (defaults to today)")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "want exactly two arguments: <symbol> <price>")
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	price, err := strconv.ParseFloat(f.Arg(1), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid price %q: %v\n", f.Arg(1), err)
		return subcommands.ExitUsageError
	}

	on := date.Today()
	if c.date != "" {
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	store, err := loadStore()
	if err != nil {
		return fail(err)
	}
	obs, err := store.Upsert(symbol, price, on)
	if err != nil {
		return fail(err)
	}
	if err := saveStore(store); err != nil {
		return fail(err)
	}

	fmt.Printf("Recorded %s @ %v on %s (change %s)\n", symbol, obs.Price, obs.On, obs.ChangePct)
	return subcommands.ExitSuccess
}
