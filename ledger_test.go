package costbasis

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestPartition(t *testing.T) {
	eth := func(tx Transaction) Transaction { tx.Product = "ETH-EUR"; return tx }
	txs := []Transaction{
		eth(buy(day(1), 1, -10)),
		buy(day(3), 1, -30),
		buy(day(1), 1, -10),
		sell(day(5), 1, 60),
		buy(day(3), 2, -60), // same time as a previous buy
		sell(day(4), 1, 40), // sells are not sorted
		eth(sell(day(2), 1, 20)),
	}

	l := Partition(txs)

	if got, want := l.Assets(), []string{"ETH", "BTC"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Assets() = %v, want %v", got, want)
	}

	btc := l.Book("BTC")
	wantBuys := []Transaction{txs[2], txs[1], txs[4]}
	if !reflect.DeepEqual(btc.Buys, wantBuys) {
		t.Errorf("BTC buys = %v, want %v", btc.Buys, wantBuys)
	}
	wantSells := []Transaction{txs[3], txs[5]}
	if !reflect.DeepEqual(btc.Sells, wantSells) {
		t.Errorf("BTC sells = %v, want %v", btc.Sells, wantSells)
	}

	ethBook := l.Book("ETH")
	if len(ethBook.Buys) != 1 || len(ethBook.Sells) != 1 {
		t.Errorf("ETH book = %s, want 1 buys, 1 sells", ethBook)
	}

	if l.Has("DOGE") {
		t.Errorf("Has(DOGE) = true, want false")
	}
	if b := l.Book("DOGE"); len(b.Buys)+len(b.Sells) != 0 {
		t.Errorf("Book(DOGE) = %s, want empty", b)
	}
}

func TestBook_Check(t *testing.T) {
	tests := []struct {
		name string
		book Book
		want error
	}{
		{name: "empty", book: Book{}},
		{name: "buys only", book: Book{Buys: []Transaction{buy(day(0), 1, -1)}}},
		{
			name: "sell after buy",
			book: Book{Buys: []Transaction{buy(day(0), 1, -1)}, Sells: []Transaction{sell(day(1), 1, 1)}},
		},
		{
			name: "sell at the same time as buy",
			book: Book{Buys: []Transaction{buy(day(0), 1, -1)}, Sells: []Transaction{sell(day(0), 1, 1)}},
		},
		{
			name: "sells without buys",
			book: Book{Sells: []Transaction{sell(day(1), 1, 1)}},
			want: ErrIncompleteLedger,
		},
		{
			name: "sell before first buy",
			book: Book{Buys: []Transaction{buy(day(2), 1, -1)}, Sells: []Transaction{sell(day(1), 1, 1)}},
			want: ErrIncompleteLedger,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.book.Check("XYZ")
			if tt.want == nil {
				if err != nil {
					t.Errorf("Check() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Check() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	ok := buy(day(0), 1, -1)
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	zero := buy(day(0), 0, -1)
	if err := zero.Validate(); err == nil {
		t.Errorf("Validate() with zero size succeeded")
	}

	negative := buy(day(0), -1, -1)
	if err := negative.Validate(); err == nil {
		t.Errorf("Validate() with negative size succeeded")
	}

	noProduct := buy(day(0), 1, -1)
	noProduct.Product = ""
	if err := noProduct.Validate(); err == nil {
		t.Errorf("Validate() without product succeeded")
	}
}

func TestAssetOf(t *testing.T) {
	for product, want := range map[string]string{
		"BTC-USD":   "BTC",
		"ETH-EUR":   "ETH",
		"USDC":      "USDC",
		"1INCH-BTC": "1INCH",
	} {
		if got := AssetOf(product); got != want {
			t.Errorf("AssetOf(%q) = %q, want %q", product, got, want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2021, time.January, 4, 9, 30, 0, 0, time.UTC), "2021-01-04T09:30:00.000Z"},
		{time.Date(2021, time.January, 4, 9, 30, 0, 123000000, time.UTC), "2021-01-04T09:30:00.123Z"},
		{time.Date(2021, time.January, 4, 9, 30, 0, 123456000, time.UTC), "2021-01-04T09:30:00.123456Z"},
		{time.Date(2021, time.January, 4, 9, 30, 0, 123456789, time.UTC), "2021-01-04T09:30:00.123456789Z"},
		{time.Date(2021, time.January, 4, 10, 30, 0, 100, paris), "2021-01-04T09:30:00.0000001Z"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
