package costbasis

import (
	"fmt"
	"sort"
)

// Book holds the fills of a single asset.
type Book struct {
	// Buys sorted by time, ties in input order.
	Buys []Transaction
	// Sells in input order, which must be chronological.
	Sells []Transaction
}

// Ledger is a set of fills partitioned by asset.
type Ledger struct {
	assets []string // in order of first appearance
	books  map[string]*Book
}

// Partition groups transactions by asset and side, and sorts each asset buys
// chronologically. Sells are kept in input order.
func Partition(txs []Transaction) *Ledger {
	l := &Ledger{books: make(map[string]*Book)}
	for _, tx := range txs {
		asset := tx.Asset()
		b, ok := l.books[asset]
		if !ok {
			b = &Book{}
			l.books[asset] = b
			l.assets = append(l.assets, asset)
		}
		switch tx.Side {
		case Buy:
			b.Buys = append(b.Buys, tx)
		case Sell:
			b.Sells = append(b.Sells, tx)
		}
	}
	for _, b := range l.books {
		sort.SliceStable(b.Buys, func(i, j int) bool { return b.Buys[i].Time.Before(b.Buys[j].Time) })
	}
	return l
}

// Assets returns the asset symbols in order of first appearance.
func (l *Ledger) Assets() []string { return l.assets }

// Book returns the fills of an asset. The returned book is empty for an
// unknown asset.
func (l *Ledger) Book(asset string) Book {
	if b, ok := l.books[asset]; ok {
		return *b
	}
	return Book{}
}

// Has reports whether the ledger contains fills for asset.
func (l *Ledger) Has(asset string) bool {
	_, ok := l.books[asset]
	return ok
}

// Check verifies that the book can be matched: every sell must be preceded
// by at least one visible buy.
func (b Book) Check(asset string) error {
	if len(b.Sells) == 0 {
		return nil
	}
	if len(b.Buys) == 0 {
		return matchErr(asset, nil, ErrIncompleteLedger,
			"no BUY fills found, but %d SELL fill(s) were found", len(b.Sells))
	}
	first := b.Sells[0]
	if first.Time.Before(b.Buys[0].Time) {
		return matchErr(asset, &first, ErrIncompleteLedger,
			"there is no BUY fill that predates the first SELL fill (first BUY on %s)", b.Buys[0].Time.Format(TimeLayout))
	}
	return nil
}

// Bought returns the total quantity bought.
func (b Book) Bought() Quantity { return total(b.Buys) }

// Sold returns the total quantity sold.
func (b Book) Sold() Quantity { return total(b.Sells) }

func total(txs []Transaction) Quantity {
	sum := Q(0)
	for _, tx := range txs {
		sum = Quantity{value: sum.value.Add(tx.Size.value)}
	}
	return sum
}

func (b Book) String() string {
	return fmt.Sprintf("%d buys, %d sells", len(b.Buys), len(b.Sells))
}
