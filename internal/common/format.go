package common

import (
	"github.com/shopspring/decimal"
)

// FormatPrice renders a price as a fixed two decimal currency string, e.g. "$19.99".
func FormatPrice(price decimal.Decimal) string {
	return "$" + price.StringFixed(2)
}

// TruncateText cuts text to maxLength characters and appends an ellipsis
// marker when the text was longer.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}
