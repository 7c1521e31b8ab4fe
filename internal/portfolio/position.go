package portfolio

import (
	"encoding/xml"
	"fmt"

	"github.com/shopspring/decimal"

	"frizo/margin_sdk/internal/common"
)

// Position 倉位 - a net holding as of the valuation date
type Position struct {
	XMLName xml.Name `xml:"position"`

	ID       string      `xml:"id,attr"`
	Account  string      `xml:"account,omitempty"`
	Product  ProductType `xml:"product"`
	Symbol   string      `xml:"symbol"`
	Currency string      `xml:"currency"`

	// LongQuantity and ShortQuantity are both non-negative
	LongQuantity  decimal.Decimal `xml:"longQuantity"`
	ShortQuantity decimal.Decimal `xml:"shortQuantity"`
}

// NewPosition creates an empty position with a generated id.
func NewPosition(product ProductType, symbol, currency string) *Position {
	return &Position{
		ID:            common.GeneratePositionID(),
		Product:       product,
		Symbol:        symbol,
		Currency:      currency,
		LongQuantity:  decimal.Zero,
		ShortQuantity: decimal.Zero,
	}
}

// Apply books a trade into the position (加倉 / 減倉).
func (p *Position) Apply(t *Trade) error {
	if t.Symbol != p.Symbol || t.Product != p.Product {
		return fmt.Errorf("trade %s (%s) does not belong to position %s", t.ID, t.Symbol, p.Symbol)
	}
	if t.Currency != p.Currency {
		return fmt.Errorf("trade currency %s does not match position currency %s", t.Currency, p.Currency)
	}

	switch t.Side {
	case BUY:
		p.LongQuantity = p.LongQuantity.Add(t.Quantity)
	case SELL:
		p.ShortQuantity = p.ShortQuantity.Add(t.Quantity)
	default:
		return fmt.Errorf("invalid side %d", int(t.Side))
	}
	return nil
}

// NetQuantity = long - short
func (p *Position) NetQuantity() decimal.Decimal {
	return p.LongQuantity.Sub(p.ShortQuantity)
}

// FromTrades aggregates trades into one position per product and symbol,
// in order of first appearance.
func FromTrades(trades []*Trade) ([]*Position, error) {
	type key struct {
		product ProductType
		symbol  string
	}

	index := make(map[key]*Position)
	positions := make([]*Position, 0)
	for _, t := range trades {
		k := key{t.Product, t.Symbol}
		p, ok := index[k]
		if !ok {
			p = NewPosition(t.Product, t.Symbol, t.Currency)
			p.Account = t.Account
			index[k] = p
			positions = append(positions, p)
		}
		if err := p.Apply(t); err != nil {
			return nil, err
		}
	}
	return positions, nil
}
