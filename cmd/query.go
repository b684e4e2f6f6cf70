package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/costbasis"
	"github.com/google/subcommands"
)

type queryCmd struct {
	ledgerFlags
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the gains report with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `cbg query -f <fills.csv> [-t <token>] <jsonpath>

  Computes the gains report and prints the result of a JSONPath expression
  evaluated on it. The report has the fields:
    matches  the sell matches (token, purch_date, sell_date, size,
             cost_with_fee, net_proceeds, gain)
    unsold   the lots no sell reached
    partial  the remainder of partially sold lots
    totals   cost, proceeds and gain

Usage Examples:
# Total gain.
$ cbg query -f fills.csv '$.totals.gain'

# Sells at a loss.
$ cbg query -f fills.csv '$.matches[?(@.gain < 0)]'

`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	c.ledgerFlags.SetFlags(f)
	c.quiet = true
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.usage(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a single JSONPath expression")
		return subcommands.ExitUsageError
	}

	report, err := c.run()
	if err != nil {
		return fail(err)
	}

	result, err := query(ctx, report, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(result))
	return subcommands.ExitSuccess
}

// query evaluates a JSONPath expression on the JSON form of report, and
// returns the result as indented JSON.
func query(ctx context.Context, report *costbasis.Report, path string) ([]byte, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	eval, err := jsonpath.New(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", path, err)
	}
	v, err := eval(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", path, err)
	}
	return json.MarshalIndent(v, "", "  ")
}
