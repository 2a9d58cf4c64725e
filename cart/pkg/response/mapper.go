package response

import (
	"github.com/shopspring/decimal"

	catalogResponse "github.com/nhmunna/Swift-E-Commerce/catalog/pkg/response"
)

// taxRate is the fixed 10% tax applied on the cart subtotal.
var taxRate = decimal.New(1, -1)

func NewCartItem(product catalogResponse.Product) CartItem {
	return CartItem{
		ID:       product.ID,
		Title:    product.Title,
		Price:    product.Price,
		Image:    product.Image,
		Quantity: 1,
	}
}

func (c Cart) ItemCount() int32 {
	var count int32
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Totals derives the order summary from the cart lines. Each published field
// is rounded to two decimal places independently from the unrounded
// intermediate values.
func (c Cart) Totals() CartTotals {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	tax := subtotal.Mul(taxRate)
	shipping := decimal.Zero
	total := subtotal.Add(tax).Add(shipping)
	return CartTotals{
		Subtotal: subtotal.Round(2),
		Tax:      tax.Round(2),
		Shipping: shipping.Round(2),
		Total:    total.Round(2),
	}
}
