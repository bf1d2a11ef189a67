package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mashop/storefront/internal/models"
)

// taxRate is the flat 10% applied at checkout.
var taxRate = decimal.New(1, -1)

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func Subtotal(items []models.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	return sum
}

// ComputeTotals derives tax and total from a subtotal, both rounded
// half-up to 2 decimals.
func ComputeTotals(subtotal decimal.Decimal) Totals {
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax).Round(2)
	return Totals{Subtotal: subtotal.Round(2), Tax: tax, Total: total}
}
