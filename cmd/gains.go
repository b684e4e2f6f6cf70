package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/etnz/costbasis/fills"
	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	ledgerFlags
	output  string
	unsold  string
	partial string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "compute realized gains and the lots to carry forward" }
func (*gainsCmd) Usage() string {
	return `cbg gains -f <fills.csv> [-t <token>] [-o <file>] [-u <file>] [-p <file>]

  Matches every SELL of the fills report against its BUYs, first in first out,
  and writes:
   - the gain of each SELL to -o,
   - the BUYs no SELL reached to -u,
   - the remainder of partially sold lots to -p.

  -u and -p are only written when some lots are carried forward. Append them
  to next year fills report.

`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	c.ledgerFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "out.csv", "Output file containing details of each SELL transaction")
	f.StringVar(&c.unsold, "u", "unsold.csv", "Output file containing completely unsold lots")
	f.StringVar(&c.partial, "p", "partial_sells.csv", "Output file containing partially unsold lots")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.usage(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report, err := c.run()
	if err != nil {
		return fail(err)
	}

	if err := fills.WriteFile(c.output, func(w io.Writer) error { return fills.EncodeMatches(w, report.Matches) }); err != nil {
		return fail(err)
	}

	if len(report.Unsold)+len(report.Partial) > 0 {
		if err := fills.WriteFile(c.unsold, func(w io.Writer) error { return fills.EncodeLots(w, report.Unsold) }); err != nil {
			return fail(err)
		}
		if err := fills.WriteFile(c.partial, func(w io.Writer) error { return fills.EncodeLots(w, report.Partial) }); err != nil {
			return fail(err)
		}
		if !c.quiet {
			log.Printf("there were purchases without a corresponding SELL, saved to %s and %s", c.unsold, c.partial)
			log.Printf("put them into next year fills report, replacing the lots that were partially sold")
		}
	}

	if !c.quiet {
		log.Printf("TOTAL cost: %s", report.Totals.Cost.Exact())
		log.Printf("TOTAL proceeds: %s", report.Totals.Proceeds.Exact())
		log.Printf("TOTAL gains: %s", report.Totals.Gain.Exact())
	}

	printMarkdown(renderer.GainsMarkdown(report))
	return subcommands.ExitSuccess
}
