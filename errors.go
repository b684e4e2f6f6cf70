package costbasis

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteLedger is returned when an asset is sold before any
	// visible purchase.
	ErrIncompleteLedger = errors.New("incomplete ledger")
	// ErrCoverageExhausted is returned when sells exceed the visible buys.
	ErrCoverageExhausted = errors.New("ran out of buys to cover the sells")
	// ErrChronology is returned when a sell can only be covered by a buy
	// that happened after it.
	ErrChronology = errors.New("sell covered by a later buy")
	// ErrInvariant reports a defect in the matching logic.
	ErrInvariant = errors.New("internal invariant violated")
)

// MatchError is the error returned when an asset cannot be matched. It wraps
// one of the Err* sentinels.
type MatchError struct {
	Asset  string
	Sell   *Transaction // offending sell, if any
	Detail string
	Err    error
}

func (e *MatchError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Asset, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Sell != nil {
		msg += fmt.Sprintf(" [sell %s]", e.Sell)
	}
	return msg
}

func (e *MatchError) Unwrap() error { return e.Err }

// Hint returns guidance for the user on how to fix the ledger, or "".
func (e *MatchError) Hint() string {
	switch {
	case errors.Is(e.Err, ErrIncompleteLedger):
		return "You may need to reach further back in your history to find the missing BUY fills.\n" +
			"Once you have them, insert the rows right after the header of the fills file and run again."
	case errors.Is(e.Err, ErrChronology):
		return "The fills file is not in chronological order, or BUY fills are missing before this SELL."
	case errors.Is(e.Err, ErrCoverageExhausted):
		return "The fills file holds more SELL than BUY quantity for this asset."
	default:
		return ""
	}
}

func matchErr(asset string, sell *Transaction, err error, format string, args ...any) *MatchError {
	return &MatchError{Asset: asset, Sell: sell, Err: err, Detail: fmt.Sprintf(format, args...)}
}
