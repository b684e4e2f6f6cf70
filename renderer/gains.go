// Package renderer renders costbasis reports as markdown.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/costbasis"
)

// GainsMarkdown renders the realized gains of a report, per asset, and the
// lots carried forward.
func GainsMarkdown(r *costbasis.Report) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains Report\n\n")
	fmt.Fprint(&b, "Method: fifo, with weighted average of the lots a sell spans\n\n")

	fmt.Fprint(&b, "## Gains per Asset\n\n")
	fmt.Fprintln(&b, "| Asset | Sells | Size | Cost | Proceeds | Gain |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, res := range r.Results {
		if len(res.Matches) == 0 {
			continue
		}
		t := res.Totals(r.Precision)
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s |\n",
			res.Asset,
			len(res.Matches),
			sold(res),
			t.Cost,
			t.Proceeds,
			t.Gain.SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **%s** | **%d** | | **%s** | **%s** | **%s** |\n",
		"Total",
		len(r.Matches),
		r.Totals.Cost,
		r.Totals.Proceeds,
		r.Totals.Gain.SignedString(),
	)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Carried Forward\n\n")
		fmt.Fprintln(w, "| Asset | Acquired | Size | Cost | Kind |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|:---|")
		n := 0
		for _, res := range r.Results {
			for _, tx := range res.Unsold {
				fmt.Fprintf(w, "| %s | %s | %s | %s | unsold |\n", res.Asset, tx.Time.Format("2006-01-02"), tx.Size, tx.Total.Abs())
				n++
			}
			if p := res.Partial; p != nil {
				fmt.Fprintf(w, "| %s | %s | %s | %s | partial |\n", res.Asset, p.Time.Format("2006-01-02"), p.Size, p.Total.Abs())
				n++
			}
		}
		return n > 0
	})

	return b.String()
}

// sold returns the quantity sold, with its unit.
func sold(res *costbasis.Result) string {
	return strings.TrimSpace(res.Sold().String() + " " + res.Matches[0].Sell.SizeUnit)
}
