package cmd

import (
	"bytes"
	"context"
	"flag"

	md "github.com/nao1215/markdown"

	"github.com/google/subcommands"
)

// watchlistCmd shows the configured watch list.
type watchlistCmd struct{}

func (*watchlistCmd) Name() string     { return "watchlist" }
func (*watchlistCmd) Synopsis() string { return "show the configured watch list" }
func (*watchlistCmd) Usage() string {
	return `swt watchlist

  Shows the watch list in use: symbols, display names, categories and the
  configured target drops.
`
}

func (*watchlistCmd) SetFlags(f *flag.FlagSet) {}

func (c *watchlistCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := loadWatchlist()
	if err != nil {
		return fail(err)
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Watch List")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Symbol", "Name", "Category", "Target Drop", "Currency"},
	}
	for e := range w.Entries() {
		table.Rows = append(table.Rows, []string{
			e.Symbol, e.Name, e.Category, e.TargetDrop.String(), e.Currency,
		})
	}
	doc.Table(table)

	printMarkdown(doc.String())
	return subcommands.ExitSuccess
}
