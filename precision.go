package costbasis

import "github.com/shopspring/decimal"

// Precision is the arithmetic context used while matching lots: every
// intermediate result is rounded half-even to Digits significant digits.
//
// A Precision value is passed explicitly to the matcher, the package never
// relies on decimal.DivisionPrecision or any other process-wide setting.
type Precision struct {
	Digits int32
}

// DefaultPrecision rounds to 13 significant digits.
var DefaultPrecision = Precision{Digits: 13}

// magnitude returns the position of the most significant digit of d,
// i.e. 3 for 123.4 and -2 for 0.00123.
func magnitude(d decimal.Decimal) int32 {
	return int32(d.NumDigits()) + d.Exponent()
}

// Round rounds d to p.Digits significant digits. A zero or negative Digits
// disables rounding.
func (p Precision) Round(d decimal.Decimal) decimal.Decimal {
	if p.Digits <= 0 || d.IsZero() {
		return d
	}
	return d.RoundBank(p.Digits - magnitude(d))
}

func (p Precision) add(a, b decimal.Decimal) decimal.Decimal { return p.Round(a.Add(b)) }
func (p Precision) sub(a, b decimal.Decimal) decimal.Decimal { return p.Round(a.Sub(b)) }
func (p Precision) mul(a, b decimal.Decimal) decimal.Decimal { return p.Round(a.Mul(b)) }

// div divides a by b, rounding the exact quotient once.
//
// The quotient is truncated two digits beyond the requested precision. A
// non zero remainder is kept as a sticky digit below them, so that a
// truncated quotient ending in 5 is never taken for an exact tie.
func (p Precision) div(a, b decimal.Decimal) decimal.Decimal {
	digits := p.Digits
	if digits <= 0 {
		digits = 28
	}
	places := digits + 2 - (magnitude(a) - magnitude(b)) + 1
	if places < 0 {
		places = 0
	}
	q, r := a.QuoRem(b, places)
	if !r.IsZero() {
		sticky := decimal.New(1, -(places + 1))
		if a.Sign()*b.Sign() < 0 {
			sticky = sticky.Neg()
		}
		q = q.Add(sticky)
	}
	return p.Round(q)
}

// Add returns m+n.
func (p Precision) Add(m, n Money) Money {
	return Money{value: p.add(m.value, n.value), cur: cur(m, n)}
}

// Sub returns m-n.
func (p Precision) Sub(m, n Money) Money {
	return Money{value: p.sub(m.value, n.value), cur: cur(m, n)}
}

// Cost returns the cost of q units at unit price u.
func (p Precision) Cost(q Quantity, u Money) Money {
	return Money{value: p.mul(q.value, u.value), cur: u.cur}
}

// UnitCost returns the cost per unit of a lot of size q bought for total t.
// The sign of t is ignored, buys carry negative totals.
func (p Precision) UnitCost(t Money, q Quantity) Money {
	return Money{value: p.div(t.value.Abs(), q.value), cur: t.cur}
}

// AddQ returns q+r.
func (p Precision) AddQ(q, r Quantity) Quantity { return Quantity{value: p.add(q.value, r.value)} }

// SubQ returns q-r.
func (p Precision) SubQ(q, r Quantity) Quantity { return Quantity{value: p.sub(q.value, r.value)} }

// Blend returns the quantity weighted average unit cost of two positions.
func (p Precision) Blend(u1 Money, q1 Quantity, u2 Money, q2 Quantity) Money {
	total := p.add(q1.value, q2.value)
	weighted := p.add(p.mul(q1.value, u1.value), p.mul(q2.value, u2.value))
	return Money{value: p.div(weighted, total), cur: cur(u1, u2)}
}
