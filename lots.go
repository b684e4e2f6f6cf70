package costbasis

import (
	"encoding/json"
	"time"
)

// Acquisition is the acquisition date reported for a sale: either the date
// of a single buy, or Various when several buys were blended together.
type Acquisition struct {
	on      time.Time
	various bool
}

// Various is the acquisition of a blended lot.
var Various = Acquisition{various: true}

// AcquiredOn returns the acquisition of a single buy.
func AcquiredOn(t time.Time) Acquisition { return Acquisition{on: t} }

// IsVarious reports whether several buys contributed.
func (a Acquisition) IsVarious() bool { return a.various }

// Time returns the acquisition time, zero for Various.
func (a Acquisition) Time() time.Time { return a.on }

func (a Acquisition) String() string {
	if a.various {
		return "Various"
	}
	return FormatTime(a.on)
}

func (a Acquisition) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

// Lot is an open position of an asset available to cover sells.
//
// It is either a SimpleLot, coming from a single buy, or a BlendedLot, the
// weighted average of several buys.
type Lot interface {
	// UnitCost is the cost basis of one unit.
	UnitCost() Money
	// Remaining is the quantity still available.
	Remaining() Quantity
	// Acquired is the acquisition reported for sells matched against the lot.
	Acquired() Acquisition
	// Latest is the time of the most recent buy contributing to the lot.
	Latest() time.Time
	// Template is the last contributing buy.
	Template() Transaction

	isLot()
}

// SimpleLot is what remains of a single buy.
type SimpleLot struct {
	Source Transaction
	Unit   Money
	Left   Quantity
}

func (l SimpleLot) UnitCost() Money         { return l.Unit }
func (l SimpleLot) Remaining() Quantity     { return l.Left }
func (l SimpleLot) Acquired() Acquisition   { return AcquiredOn(l.Source.Time) }
func (l SimpleLot) Latest() time.Time       { return l.Source.Time }
func (l SimpleLot) Template() Transaction   { return l.Source }
func (SimpleLot) isLot()                    {}
func (l SimpleLot) withLeft(q Quantity) Lot { l.Left = q; return l }

// BlendedLot is the quantity weighted average of two or more buys, in the
// order they were blended.
type BlendedLot struct {
	Sources []Transaction
	Unit    Money
	Left    Quantity
}

func (l BlendedLot) UnitCost() Money       { return l.Unit }
func (l BlendedLot) Remaining() Quantity   { return l.Left }
func (l BlendedLot) Acquired() Acquisition { return Various }
func (BlendedLot) isLot()                  {}

func (l BlendedLot) Latest() time.Time {
	var latest time.Time
	for _, s := range l.Sources {
		if s.Time.After(latest) {
			latest = s.Time
		}
	}
	return latest
}

func (l BlendedLot) Template() Transaction { return l.Sources[len(l.Sources)-1] }

func (l BlendedLot) withLeft(q Quantity) Lot { l.Left = q; return l }

// sources returns the buys that contributed to l.
func sources(l Lot) []Transaction {
	switch v := l.(type) {
	case SimpleLot:
		return []Transaction{v.Source}
	case BlendedLot:
		return v.Sources
	default:
		panic("unknown lot type")
	}
}

// withRemaining returns a copy of l with a new remaining quantity.
func withRemaining(l Lot, q Quantity) Lot {
	switch v := l.(type) {
	case SimpleLot:
		return v.withLeft(q)
	case BlendedLot:
		return v.withLeft(q)
	default:
		panic("unknown lot type")
	}
}

// MatchState is the lot currently open to cover the next sell of an asset.
// The zero value is an empty state.
type MatchState struct {
	lot Lot
}

// Empty reports whether no lot is open.
func (s MatchState) Empty() bool { return s.lot == nil }

// Lot returns the open lot, nil when empty.
func (s MatchState) Lot() Lot { return s.lot }
