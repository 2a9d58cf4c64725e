package response

import (
	"github.com/shopspring/decimal"
)

// Cart is the persisted shopping cart document. Items keep their insertion
// order and hold at most one entry per product id.
type Cart struct {
	Items []CartItem `json:"items"`
}

// CartItem snapshots title, price and image from the product at the time it
// was first added; a later catalog price change does not refresh it.
type CartItem struct {
	ID       int64           `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int32           `json:"quantity"`
}

type CartTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}
