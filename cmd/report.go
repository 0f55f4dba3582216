package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/google/subcommands"

	"github.com/dipwatch/stockwatch/renderer"
)

// reportCmd regenerates the report from the persisted store, without
// touching any prices.
type reportCmd struct {
	reportFile string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render the tracking report from the stored data" }
func (*reportCmd) Usage() string {
	return `swt report [-o <report-file>]

  Renders the daily tracking report from the persisted observations: the
  overview table, the triggered buy signals (or an explicit statement that
  there are none) and the guidance footer. Prices are not fetched.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.reportFile, "o", "", "File to also write the markdown report to")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := loadStore()
	if err != nil {
		return fail(err)
	}

	report, err := store.Report(time.Now(), nil)
	if err != nil {
		return fail(err)
	}
	md := renderer.TrackingMarkdown(report)
	printMarkdown(md)

	if c.reportFile != "" {
		if err := writeReport(c.reportFile, md); err != nil {
			return fail(err)
		}
	}
	return subcommands.ExitSuccess
}
