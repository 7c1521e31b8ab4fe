package portfolio

import (
	"encoding/xml"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"frizo/margin_sdk/internal/common"
)

// Trade 成交 - an exchange traded derivative trade submitted for margining
type Trade struct {
	XMLName xml.Name `xml:"trade"`

	// trade info
	ID        string      `xml:"id,attr"`
	Account   string      `xml:"account,omitempty"`
	TradeDate civil.Date  `xml:"tradeDate"`
	Product   ProductType `xml:"product"`
	Symbol    string      `xml:"symbol"` // exchange security id
	Side      Side        `xml:"side"`

	// economics (decimal)
	Quantity   decimal.Decimal `xml:"quantity"`
	Price      decimal.Decimal `xml:"price"`
	Multiplier decimal.Decimal `xml:"multiplier"` // contract size
	Currency   string          `xml:"currency"`
}

// NewTrade creates a trade with a generated id and a multiplier of one.
func NewTrade(tradeDate civil.Date, product ProductType, symbol string, side Side, quantity, price decimal.Decimal, currency string) (*Trade, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if side != BUY && side != SELL {
		return nil, fmt.Errorf("invalid side %d", int(side))
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("quantity must be greater than zero")
	}

	return &Trade{
		ID:         common.GenerateTradeID(),
		TradeDate:  tradeDate,
		Product:    product,
		Symbol:     symbol,
		Side:       side,
		Quantity:   quantity,
		Price:      price,
		Multiplier: decimal.NewFromInt(1),
		Currency:   currency,
	}, nil
}

// Notional = quantity * price * multiplier, signed by side
func (t *Trade) Notional() decimal.Decimal {
	return t.Quantity.Mul(t.Price).Mul(t.Multiplier).Mul(decimal.NewFromInt(int64(t.Side)))
}
