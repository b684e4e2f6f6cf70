package costbasis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Side tells whether a fill acquired or disposed of an asset.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

func (s Side) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// ParseSide parses "BUY" or "SELL".
func ParseSide(s string) (Side, error) {
	switch s {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown side %q, want BUY or SELL", s)
	}
}

// AssetOf returns the asset symbol of a product, that is the part before the
// first "-" ("BTC" for "BTC-USD").
func AssetOf(product string) string {
	asset, _, _ := strings.Cut(product, "-")
	return asset
}

// Transaction is one fill of the ledger.
//
// Total is signed: negative for a buy, positive for a sell. Fee is
// informational and already part of Total.
type Transaction struct {
	Portfolio string    `json:"portfolio"`
	TradeID   string    `json:"trade_id"`
	Product   string    `json:"product"`
	Side      Side      `json:"side"`
	Time      time.Time `json:"created_at"`
	Size      Quantity  `json:"size"`
	SizeUnit  string    `json:"size_unit"`
	Price     Money     `json:"price"`
	Fee       Money     `json:"fee"`
	Total     Money     `json:"total"`
	Unit      string    `json:"unit"`

	// Partial is set on the synthetic record describing what is left of a
	// partially sold lot.
	Partial bool `json:"partial,omitempty"`
}

// Asset returns the asset symbol the transaction is about.
func (tx Transaction) Asset() string { return AssetOf(tx.Product) }

// Validate checks the transaction invariants.
func (tx Transaction) Validate() error {
	var errs []error
	if tx.Product == "" {
		errs = append(errs, errors.New("missing product"))
	}
	if tx.Side != Buy && tx.Side != Sell {
		errs = append(errs, fmt.Errorf("invalid side %d", tx.Side))
	}
	if !tx.Size.IsPositive() {
		errs = append(errs, fmt.Errorf("size must be positive, got %s", tx.Size))
	}
	if tx.Time.IsZero() {
		errs = append(errs, errors.New("missing time"))
	}
	return errors.Join(errs...)
}

// String describes the transaction in a single line, used in diagnostics.
func (tx Transaction) String() string {
	return fmt.Sprintf("%s %s %s of %s at %s for %s (trade %s)",
		FormatTime(tx.Time), tx.Side, tx.Size, tx.Product, tx.Price.Exact(), tx.Total.Exact(), tx.TradeID)
}

// TimeLayout is the layout of fill timestamps.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime formats t in UTC with TimeLayout. Timestamps finer than the
// millisecond keep all their digits.
func FormatTime(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()%int(time.Millisecond) == 0 {
		return t.Format(TimeLayout)
	}
	return t.Format("2006-01-02T15:04:05.999999999Z")
}
