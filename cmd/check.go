package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/etnz/costbasis"
	"github.com/google/subcommands"
	"github.com/olekukonko/tablewriter"
)

type checkCmd struct {
	ledgerFlags
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "check that a fills report can be processed" }
func (*checkCmd) Usage() string {
	return `cbg check -f <fills.csv> [-t <token>]

  Reads the fills report and matches every SELL, without writing any file.
  Prints a summary per token, or the first problem found.

`
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.usage(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	report, err := c.run()
	if err != nil {
		return fail(err)
	}
	writeSummary(os.Stdout, report)
	return subcommands.ExitSuccess
}

// writeSummary writes one row per token of the report.
func writeSummary(w io.Writer, r *costbasis.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"token", "sells", "sold", "unsold lots", "carried", "gain"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, res := range r.Results {
		table.Append([]string{
			res.Asset,
			strconv.Itoa(len(res.Matches)),
			res.Sold().String(),
			strconv.Itoa(len(res.Unsold)),
			res.Carried().String(),
			res.Totals(r.Precision).Gain.Exact(),
		})
	}
	table.SetFooter([]string{"", strconv.Itoa(len(r.Matches)), "", strconv.Itoa(len(r.Unsold)), "", r.Totals.Gain.Exact()})
	table.Render()
}
