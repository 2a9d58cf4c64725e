package response

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int64   `json:"count"`
}
