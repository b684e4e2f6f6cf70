// Package fills reads and writes Coinbase Pro "fills" CSV reports.
//
// Decode turns a fills report into transactions. EncodeMatches and EncodeLots
// write the outcome of a costbasis run: the sell matches, and the lots to
// carry forward into next period fills file.
package fills

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/etnz/costbasis"
)

// Header is the exact header of a fills report.
const Header = "portfolio,trade id,product,side,created at,size,size unit,price,fee,total,price/fee/total unit"

// MatchHeader is the header of the sell matches report.
const MatchHeader = "token,purch_date,sell_date,size,cost_with_fee,net_proceeds,gain"

// FeeIncorporated replaces the fee of a partial lot, whose total already
// accounts for it.
const FeeIncorporated = "factored into total"

const (
	colPortfolio = iota
	colTradeID
	colProduct
	colSide
	colCreatedAt
	colSize
	colSizeUnit
	colPrice
	colFee
	colTotal
	colUnit
	numColumns
)

// ErrHeader is wrapped by errors reporting an unexpected header.
var ErrHeader = errors.New("unexpected header")

// HeaderError reports a file whose header is not Header.
type HeaderError struct {
	Got string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("expected header to be %q, got %q: this file might not be a fills report", Header, e.Got)
}

func (e *HeaderError) Unwrap() error { return ErrHeader }

// RowError reports an invalid row.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

// Decode reads a fills report.
func Decode(r io.Reader) ([]costbasis.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &HeaderError{}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if got := strings.Join(header, ","); got != Header {
		return nil, &HeaderError{Got: got}
	}

	var txs []costbasis.Transaction
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err // csv errors carry their line
		}
		line, _ := cr.FieldPos(0)
		tx, err := decodeRecord(record)
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func decodeRecord(record []string) (tx costbasis.Transaction, err error) {
	if len(record) != numColumns {
		return tx, fmt.Errorf("got %d fields, want %d", len(record), numColumns)
	}
	unit := record[colUnit]
	tx = costbasis.Transaction{
		Portfolio: record[colPortfolio],
		TradeID:   record[colTradeID],
		Product:   record[colProduct],
		SizeUnit:  record[colSizeUnit],
		Unit:      unit,
	}
	if tx.Side, err = costbasis.ParseSide(record[colSide]); err != nil {
		return tx, err
	}
	if tx.Time, err = time.Parse(time.RFC3339Nano, record[colCreatedAt]); err != nil {
		return tx, fmt.Errorf("invalid created at: %w", err)
	}
	if tx.Size, err = costbasis.ParseQuantity(record[colSize]); err != nil {
		return tx, fmt.Errorf("invalid size %q: %w", record[colSize], err)
	}
	if tx.Total, err = costbasis.ParseMoney(record[colTotal], unit); err != nil {
		return tx, fmt.Errorf("invalid total %q: %w", record[colTotal], err)
	}
	if tx.Price, err = costbasis.ParseMoney(record[colPrice], unit); err != nil {
		return tx, fmt.Errorf("invalid price %q: %w", record[colPrice], err)
	}
	// the fee of a partial lot is already part of its total.
	if record[colFee] == FeeIncorporated {
		tx.Partial = true
		tx.Fee = costbasis.M(0, unit)
	} else if tx.Fee, err = costbasis.ParseMoney(record[colFee], unit); err != nil {
		return tx, fmt.Errorf("invalid fee %q: %w", record[colFee], err)
	}

	return tx, tx.Validate()
}

// ReadFile reads the fills report at path.
func ReadFile(path string) ([]costbasis.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	txs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txs, nil
}
