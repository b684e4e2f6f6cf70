package costbasis

import (
	"slices"
	"time"
)

// SellMatch is the outcome of matching one sell against the open lot.
type SellMatch struct {
	Asset    string      `json:"token"`
	Acquired Acquisition `json:"purch_date"`
	Sold     time.Time   `json:"sell_date"`
	Size     Quantity    `json:"size"`
	Cost     Money       `json:"cost_with_fee"`
	Proceeds Money       `json:"net_proceeds"`
	Gain     Money       `json:"gain"`
	Sell     Transaction `json:"-"`
}

// Result is the outcome of matching all the sells of one asset.
type Result struct {
	Asset   string
	Matches []SellMatch
	// Unsold are the buys never reached by a sell.
	Unsold []Transaction
	// Partial is what is left of the last open lot, if any.
	Partial *Transaction
}

// Sold returns the quantity sold.
func (r *Result) Sold() Quantity {
	sum := Q(0)
	for _, m := range r.Matches {
		sum = Quantity{value: sum.value.Add(m.Size.value)}
	}
	return sum
}

// Carried returns the quantity carried forward to the next period.
func (r *Result) Carried() Quantity {
	sum := total(r.Unsold)
	if r.Partial != nil {
		sum = Quantity{value: sum.value.Add(r.Partial.Size.value)}
	}
	return sum
}

// Matcher matches sells against buys, first in first out. When a sell is
// larger than the open lot, the following buys are blended into it at their
// quantity weighted average cost.
//
// A Matcher holds no state between calls and may be shared.
type Matcher struct {
	prec Precision
}

// NewMatcher returns a Matcher computing with precision p.
func NewMatcher(p Precision) *Matcher { return &Matcher{prec: p} }

// Open returns a lot made of a single buy.
func (m *Matcher) Open(buy Transaction) Lot {
	return SimpleLot{
		Source: buy,
		Unit:   m.prec.UnitCost(buy.Total, buy.Size),
		Left:   buy.Size,
	}
}

// Blend averages buy into lot.
func (m *Matcher) Blend(lot Lot, buy Transaction) Lot {
	unit := m.prec.UnitCost(buy.Total, buy.Size)
	return BlendedLot{
		Sources: append(slices.Clone(sources(lot)), buy),
		Unit:    m.prec.Blend(lot.UnitCost(), lot.Remaining(), unit, buy.Size),
		Left:    m.prec.AddQ(lot.Remaining(), buy.Size),
	}
}

// Step matches a single sell. It returns the state and buy cursor to use for
// the next sell of the same asset, and the match produced. The inputs are not
// modified.
func (m *Matcher) Step(asset string, state MatchState, buys []Transaction, cursor int, sell Transaction) (MatchState, int, SellMatch, error) {
	lot := state.lot
	if lot == nil {
		if cursor >= len(buys) {
			return state, cursor, SellMatch{}, matchErr(asset, &sell, ErrCoverageExhausted, "no BUY fill left to open a lot")
		}
		lot = m.Open(buys[cursor])
		cursor++
	}

	for sell.Size.GreaterThan(lot.Remaining()) {
		if cursor >= len(buys) {
			return state, cursor, SellMatch{}, matchErr(asset, &sell, ErrCoverageExhausted,
				"holding %s, selling %s", lot.Remaining(), sell.Size)
		}
		lot = m.Blend(lot, buys[cursor])
		cursor++
	}

	if lot.Latest().After(sell.Time) {
		return state, cursor, SellMatch{}, matchErr(asset, &sell, ErrChronology,
			"not enough %s to cover the SELL and the next BUY on %s is after it", asset, lot.Latest().Format(TimeLayout))
	}

	cost := m.prec.Cost(sell.Size, lot.UnitCost())
	match := SellMatch{
		Asset:    asset,
		Acquired: lot.Acquired(),
		Sold:     sell.Time,
		Size:     sell.Size,
		Cost:     cost,
		Proceeds: sell.Total,
		Gain:     m.prec.Sub(sell.Total, cost),
		Sell:     sell,
	}

	left := m.prec.SubQ(lot.Remaining(), sell.Size)
	switch {
	case left.IsNegative():
		return state, cursor, SellMatch{}, matchErr(asset, &sell, ErrInvariant, "sell of %s is bigger than the lot of %s", sell.Size, lot.Remaining())
	case left.IsZero():
		return MatchState{}, cursor, match, nil
	default:
		return MatchState{lot: withRemaining(lot, left)}, cursor, match, nil
	}
}

// Match matches all the sells of an asset. It fails if the book does not
// pass Check, or if any sell cannot be matched.
//
// Whatever is left of the last open lot is returned as Partial, whether the
// lot is blended or comes from a single buy, so that the quantity bought is
// always the quantity sold plus the quantity carried forward.
func (m *Matcher) Match(asset string, b Book) (*Result, error) {
	if err := b.Check(asset); err != nil {
		return nil, err
	}
	res := &Result{Asset: asset}
	var state MatchState
	cursor := 0
	for _, sell := range b.Sells {
		var match SellMatch
		var err error
		state, cursor, match, err = m.Step(asset, state, b.Buys, cursor, sell)
		if err != nil {
			return nil, err
		}
		res.Matches = append(res.Matches, match)
	}
	if !state.Empty() {
		partial := m.carryForward(state.lot)
		res.Partial = &partial
	}
	res.Unsold = slices.Clone(b.Buys[cursor:])
	return res, nil
}

// carryForward turns what is left of a lot into a buy record, shaped after
// the last buy that contributed to it.
func (m *Matcher) carryForward(lot Lot) Transaction {
	tx := lot.Template()
	tx.Size = lot.Remaining()
	tx.Total = m.prec.Cost(lot.Remaining(), lot.UnitCost()).Neg()
	tx.Fee = Money{cur: tx.Total.cur}
	tx.Partial = true
	return tx
}
