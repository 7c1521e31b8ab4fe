package portfolio

import (
	"fmt"
	"io"

	"cloud.google.com/go/civil"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// tradeRecord is one row of a trade blotter CSV
type tradeRecord struct {
	Account   string `csv:"account"`
	TradeDate string `csv:"trade_date"`
	Product   string `csv:"product"`
	Symbol    string `csv:"symbol"`
	Side      string `csv:"side"`
	Quantity  string `csv:"quantity"`
	Price     string `csv:"price"`
	Currency  string `csv:"currency"`
}

// ReadTradesCSV parses a trade blotter into trades, keeping row order.
func ReadTradesCSV(r io.Reader) ([]*Trade, error) {
	var records []*tradeRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("failed to parse trade csv: %w", err)
	}

	trades := make([]*Trade, 0, len(records))
	for i, rec := range records {
		trade, err := rec.toTrade()
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("trade csv line %d: %w", i+2, err)
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

func (rec *tradeRecord) toTrade() (*Trade, error) {
	date, err := civil.ParseDate(rec.TradeDate)
	if err != nil {
		return nil, fmt.Errorf("invalid trade_date %q", rec.TradeDate)
	}

	var product ProductType
	if err := product.UnmarshalText([]byte(rec.Product)); err != nil {
		return nil, err
	}

	var side Side
	if err := side.UnmarshalText([]byte(rec.Side)); err != nil {
		return nil, err
	}

	quantity, err := decimal.NewFromString(rec.Quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q", rec.Quantity)
	}
	price, err := decimal.NewFromString(rec.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", rec.Price)
	}

	trade, err := NewTrade(date, product, rec.Symbol, side, quantity, price, rec.Currency)
	if err != nil {
		return nil, err
	}
	trade.Account = rec.Account
	return trade, nil
}
