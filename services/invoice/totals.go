package invoice

import (
	"salonhub/models"

	"github.com/shopspring/decimal"
)

// Line is one priced invoice row.
type Line struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Totals is the invoice money breakdown, rounded to cents.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Tip      decimal.Decimal
	Total    decimal.Decimal
}

// Compute prices the booking's service lines. Tax applies to the discounted
// subtotal; the tip is added untaxed. A discount larger than the subtotal
// brings the taxable amount to zero.
func Compute(b *models.Booking, taxRate float64) ([]Line, Totals) {
	lines := make([]Line, 0, len(b.Services))
	subtotal := decimal.Zero
	for _, s := range b.Services {
		qty := decimal.NewFromFloat(s.Quantity.Float())
		price := decimal.NewFromFloat(s.Price.Float())
		amount := qty.Mul(price).Round(2)
		lines = append(lines, Line{Description: s.Name, Quantity: qty, UnitPrice: price, Amount: amount})
		subtotal = subtotal.Add(amount)
	}

	discount := decimal.NewFromFloat(b.Discount).Round(2)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
		discount = subtotal
	}
	tax := taxable.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	tip := decimal.NewFromFloat(b.Tip).Round(2)
	if tip.IsNegative() {
		tip = decimal.Zero
	}

	return lines, Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Tip:      tip,
		Total:    taxable.Add(tax).Add(tip),
	}
}
