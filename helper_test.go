package costbasis

import (
	"time"

	"github.com/shopspring/decimal"
)

var origin = time.Date(2021, time.January, 4, 9, 30, 0, 0, time.UTC)

// day returns a time n days after the test origin.
func day(n int) time.Time { return origin.AddDate(0, 0, n) }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// D parses a decimal, panicking on error.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fill(side Side, asset string, on time.Time, size, total float64) Transaction {
	return Transaction{
		Portfolio: "default",
		TradeID:   on.Format("20060102") + side.String(),
		Product:   asset + "-USD",
		Side:      side,
		Time:      on,
		Size:      Q(size),
		SizeUnit:  asset,
		Price:     USD(0),
		Fee:       USD(0),
		Total:     USD(total),
		Unit:      "USD",
	}
}

// buy returns a BTC buy, total is negative.
func buy(on time.Time, size, total float64) Transaction { return fill(Buy, "BTC", on, size, total) }

// sell returns a BTC sell, total is positive.
func sell(on time.Time, size, total float64) Transaction { return fill(Sell, "BTC", on, size, total) }
