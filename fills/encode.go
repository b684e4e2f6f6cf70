package fills

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/costbasis"
)

// EncodeMatches writes the sell matches report: the MatchHeader and one row
// per match.
func EncodeMatches(w io.Writer, matches []costbasis.SellMatch) error {
	cw := csv.NewWriter(w)
	cw.Write(strings.Split(MatchHeader, ","))
	for _, m := range matches {
		cw.Write([]string{
			m.Asset,
			m.Acquired.String(),
			costbasis.FormatTime(m.Sold),
			m.Size.String(),
			m.Cost.Exact(),
			m.Proceeds.Exact(),
			m.Gain.Exact(),
		})
	}
	cw.Flush()
	return cw.Error()
}

// EncodeLots writes lots in the fills report layout, so that they can be
// inserted in the next period fills file.
func EncodeLots(w io.Writer, lots []costbasis.Transaction) error {
	cw := csv.NewWriter(w)
	cw.Write(strings.Split(Header, ","))
	for _, tx := range lots {
		fee := tx.Fee.Exact()
		if tx.Partial {
			fee = FeeIncorporated
		}
		cw.Write([]string{
			tx.Portfolio,
			tx.TradeID,
			tx.Product,
			tx.Side.String(),
			costbasis.FormatTime(tx.Time),
			tx.Size.String(),
			tx.SizeUnit,
			tx.Price.Exact(),
			fee,
			tx.Total.Exact(),
			tx.Unit,
		})
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates the file at path, writes it with encode and closes it.
func WriteFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	if err := encode(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
