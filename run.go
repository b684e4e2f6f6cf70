package costbasis

import (
	"golang.org/x/sync/errgroup"
)

// Options control a Run.
type Options struct {
	// Precision used for every computation. The zero value means
	// DefaultPrecision.
	Precision Precision
	// Asset restricts the run to a single asset when not empty.
	Asset string
	// Workers is the number of assets matched concurrently. Values below 2
	// match assets one after the other.
	Workers int
	// OnAsset, if set, is called before an asset is matched. It may be
	// called concurrently when Workers > 1.
	OnAsset func(asset string, b Book)
}

// Totals are the aggregated figures of a Report.
type Totals struct {
	Cost     Money `json:"cost"`
	Proceeds Money `json:"proceeds"`
	Gain     Money `json:"gain"`
}

func (t Totals) add(prec Precision, matches ...SellMatch) Totals {
	for _, m := range matches {
		t.Cost = prec.Add(t.Cost, m.Cost)
		t.Proceeds = prec.Add(t.Proceeds, m.Proceeds)
		t.Gain = prec.Add(t.Gain, m.Gain)
	}
	return t
}

// Totals returns the aggregated figures of the asset sells.
func (r *Result) Totals(prec Precision) Totals { return Totals{}.add(prec, r.Matches...) }

// Report is the outcome of matching every asset of a ledger.
type Report struct {
	Precision Precision     `json:"-"`
	Results   []*Result     `json:"-"`
	Matches   []SellMatch   `json:"matches"`
	Unsold    []Transaction `json:"unsold"`
	Partial   []Transaction `json:"partial"`
	Totals    Totals        `json:"totals"`
}

// Assets returns the assets processed, in order.
func (r *Report) Assets() []string {
	assets := make([]string, len(r.Results))
	for i, res := range r.Results {
		assets[i] = res.Asset
	}
	return assets
}

// Run matches every asset of the ledger (or only opts.Asset) and aggregates
// the results.
//
// Run is all or nothing: if any asset fails, the error of the first failing
// asset in ledger order is returned and no report is produced.
func Run(l *Ledger, opts Options) (*Report, error) {
	prec := opts.Precision
	if prec == (Precision{}) {
		prec = DefaultPrecision
	}
	m := NewMatcher(prec)

	var assets []string
	for _, asset := range l.Assets() {
		if opts.Asset != "" && asset != opts.Asset {
			continue
		}
		assets = append(assets, asset)
	}

	results := make([]*Result, len(assets))
	errs := make([]error, len(assets))
	match := func(i int) error {
		b := l.Book(assets[i])
		if opts.OnAsset != nil {
			opts.OnAsset(assets[i], b)
		}
		results[i], errs[i] = m.Match(assets[i], b)
		return errs[i]
	}

	if opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i := range assets {
			i := i
			g.Go(func() error { return match(i) })
		}
		g.Wait() // errors are collected in errs, to report them in ledger order.
	} else {
		for i := range assets {
			if err := match(i); err != nil {
				break
			}
		}
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return aggregate(prec, results), nil
}

func aggregate(prec Precision, results []*Result) *Report {
	r := &Report{Precision: prec, Results: results}
	for _, res := range results {
		r.Totals = r.Totals.add(prec, res.Matches...)
		r.Matches = append(r.Matches, res.Matches...)
		r.Unsold = append(r.Unsold, res.Unsold...)
		if res.Partial != nil {
			r.Partial = append(r.Partial, *res.Partial)
		}
	}
	return r
}
