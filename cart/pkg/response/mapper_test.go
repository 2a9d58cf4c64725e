package response

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	catalogResponse "github.com/nhmunna/Swift-E-Commerce/catalog/pkg/response"
)

type CartTotalsTest struct {
	name             string
	cart             Cart
	expectedSubtotal string
	expectedTax      string
	expectedShipping string
	expectedTotal    string
}

func TestCartTotals(t *testing.T) {
	tests := []CartTotalsTest{
		{
			name:             "given empty cart should return zero totals",
			cart:             Cart{Items: []CartItem{}},
			expectedSubtotal: "0.00",
			expectedTax:      "0.00",
			expectedShipping: "0.00",
			expectedTotal:    "0.00",
		},
		{
			name: "given two items should sum price times quantity",
			cart: Cart{Items: []CartItem{
				{ID: 1, Title: "backpack", Price: decimal.NewFromFloat(19.99), Quantity: 2},
				{ID: 2, Title: "t-shirt", Price: decimal.NewFromFloat(5), Quantity: 1},
			}},
			expectedSubtotal: "44.98",
			expectedTax:      "4.50",
			expectedShipping: "0.00",
			expectedTotal:    "49.48",
		},
		{
			name: "given fractional tax should round each field independently",
			cart: Cart{Items: []CartItem{
				{ID: 1, Title: "charm", Price: decimal.NewFromFloat(0.05), Quantity: 1},
			}},
			expectedSubtotal: "0.05",
			expectedTax:      "0.01",
			expectedShipping: "0.00",
			expectedTotal:    "0.06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := tt.cart.Totals()

			assert.EqualValues(t, tt.expectedSubtotal, actual.Subtotal.StringFixed(2))
			assert.EqualValues(t, tt.expectedTax, actual.Tax.StringFixed(2))
			assert.EqualValues(t, tt.expectedShipping, actual.Shipping.StringFixed(2))
			assert.EqualValues(t, tt.expectedTotal, actual.Total.StringFixed(2))
		})
	}
}

func TestItemCount(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ID: 1, Quantity: 2},
		{ID: 2, Quantity: 3},
	}}

	assert.EqualValues(t, int32(5), cart.ItemCount())
	assert.EqualValues(t, int32(0), Cart{}.ItemCount())
}

func TestNewCartItemSnapshotsProduct(t *testing.T) {
	product := catalogResponse.Product{
		ID:          42,
		Title:       "Fjallraven - Foldsack No. 1 Backpack",
		Price:       decimal.NewFromFloat(109.95),
		Description: "Your perfect pack for everyday use",
		Category:    "men's clothing",
		Image:       "https://fakestoreapi.com/img/81fPKd-2AYL.jpg",
		Rating:      catalogResponse.Rating{Rate: 3.9, Count: 120},
	}

	expected := CartItem{
		ID:       42,
		Title:    "Fjallraven - Foldsack No. 1 Backpack",
		Price:    decimal.NewFromFloat(109.95),
		Image:    "https://fakestoreapi.com/img/81fPKd-2AYL.jpg",
		Quantity: 1,
	}

	assert.EqualValues(t, expected, NewCartItem(product))
}
