package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/dipwatch/stockwatch/chart"
)

// chartsCmd exports the per-symbol trend charts.
type chartsCmd struct {
	outputDir string
}

func (*chartsCmd) Name() string     { return "charts" }
func (*chartsCmd) Synopsis() string { return "export PNG trend charts for every tracked symbol" }
func (*chartsCmd) Usage() string {
	return `swt charts [-o <dir>]

  Renders one PNG per symbol with at least two observations: the price
  series with the baseline and target price drawn as dashed lines.
`
}

func (c *chartsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "stock_data/charts", "Directory for the generated charts")
}

func (c *chartsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := newLogger()
	defer log.Sync()

	store, err := loadStore()
	if err != nil {
		return fail(err)
	}

	written, err := chart.ExportAll(c.outputDir, store)
	for _, path := range written {
		log.Infow("chart written", "file", path)
	}
	if err != nil {
		return fail(err)
	}
	if len(written) == 0 {
		log.Info("no symbol has enough observations to chart yet")
	}
	return subcommands.ExitSuccess
}
