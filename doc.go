// Package costbasis computes realized capital gains from a ledger of buy and
// sell fills, using the first in first out method with weighted average
// blending of the lots a single sell spans.
//
// The computation has two stages:
//   - Partition groups fills by asset and side and sorts each asset buys
//     chronologically.
//   - A Matcher consumes, for one asset, the buys in order to cover each sell.
//     When a sell is bigger than the open lot, the next buys are blended into
//     it at their quantity weighted average cost, and the sell is reported as
//     acquired on "Various" dates.
//
// What is not sold by the end of the ledger is carried forward: untouched
// buys as they are, and the remainder of the open lot as a synthetic buy
// marked Partial.
//
// All arithmetic is exact decimal arithmetic rounded to a fixed number of
// significant digits given by a Precision value.
//
// Every data inconsistency is fatal: Run returns a *MatchError and no
// report, since wrong tax figures are worse than none.
package costbasis
