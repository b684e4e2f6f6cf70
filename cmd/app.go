// Package cmd implements the cbg command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/fills"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&gainsCmd{}, "gains")
	c.Register(&checkCmd{}, "gains")
	c.Register(&queryCmd{}, "gains")

	c.Register(&topicCmd{}, "documentation")
}

// ledgerFlags are the flags shared by commands that process a fills report.
type ledgerFlags struct {
	file    string
	asset   string
	workers int
	quiet   bool
}

func (l *ledgerFlags) SetFlags(f *flag.FlagSet) {
	cfg := loadConfig()
	f.StringVar(&l.file, "f", cfg.FillsFile, "Coinbase Pro fills.csv file (required, defaults to $"+EnvFillsFile+")")
	f.StringVar(&l.asset, "t", cfg.Token, "Only process transactions for this token")
	f.IntVar(&l.workers, "j", cfg.Workers, "Number of tokens processed concurrently")
	f.BoolVar(&l.quiet, "q", false, "Do not print progress messages")
}

// run reads the fills report and matches it.
func (l *ledgerFlags) run() (*costbasis.Report, error) {
	txs, err := fills.ReadFile(l.file)
	if err != nil {
		return nil, err
	}
	ledger := costbasis.Partition(txs)
	if l.asset != "" && !ledger.Has(l.asset) {
		log.Printf("warning: no transactions found for %s", l.asset)
	}
	return costbasis.Run(ledger, costbasis.Options{
		Precision: costbasis.DefaultPrecision,
		Asset:     l.asset,
		Workers:   l.workers,
		OnAsset: func(asset string, b costbasis.Book) {
			if !l.quiet {
				log.Printf("processing trades for token %s: %s", asset, b)
			}
		},
	})
}

// usage validates the shared flags.
func (l *ledgerFlags) usage() error {
	if l.file == "" {
		return errors.New("-f is required")
	}
	if l.workers < 1 {
		return fmt.Errorf("-j must be at least 1, got %d", l.workers)
	}
	return nil
}

// fail prints a diagnostic for err and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	var herr *fills.HeaderError
	var merr *costbasis.MatchError
	switch {
	case errors.As(err, &herr):
		fmt.Fprintf(os.Stderr, "Expected header to be: %s\n", fills.Header)
		fmt.Fprintln(os.Stderr, "Because your header is not an exact match, this file might not be the expected format.")
		fmt.Fprintln(os.Stderr, "Cannot continue.")
	case errors.As(err, &merr):
		fmt.Fprintf(os.Stderr, "Unable to calculate capital gains for %s: %v\n", merr.Asset, merr.Err)
		if merr.Detail != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", merr.Detail)
		}
		if merr.Sell != nil {
			fmt.Fprintf(os.Stderr, "Details of the SELL that could not be covered:\n  %s\n", merr.Sell)
		}
		if hint := merr.Hint(); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return subcommands.ExitFailure
}

// printMarkdown renders md for the terminal, and falls back to the raw
// markdown.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
