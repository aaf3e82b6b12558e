// Package checkout settles a served order: it prices the bill, asks the
// backend to generate it, takes the payment and prints the slip.
package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/models"
)

// Totals are the four amounts shown to the cashier and sent for settlement.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	Tax          decimal.Decimal `json:"tax"`
	DiscountRate decimal.Decimal `json:"discountRate"`
	Discount     decimal.Decimal `json:"discount"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
}

// Quote prices subtotal with the given settings. A non-nil discount replaces
// the settings' default discount amount. The grand total never goes below 0.
func Quote(subtotal decimal.Decimal, settings models.Settings, discount *decimal.Decimal) Totals {
	tax := models.Round2(subtotal.Mul(settings.TaxRate).Div(models.Hundred))

	d := models.Round2(subtotal.Mul(settings.DiscountRate).Div(models.Hundred))
	if discount != nil {
		d = models.Round2(*discount)
	}

	grand := subtotal.Add(tax).Sub(d)
	if grand.IsNegative() {
		grand = decimal.Zero
	}

	return Totals{
		Subtotal:     models.Round2(subtotal),
		TaxRate:      settings.TaxRate,
		Tax:          tax,
		DiscountRate: settings.DiscountRate,
		Discount:     d,
		GrandTotal:   models.Round2(grand),
	}
}

// OrderSubtotal prefers the backend's stored total and falls back to the
// item lines when it is missing.
func OrderSubtotal(order models.Order) decimal.Decimal {
	if order.TotalAmount.IsPositive() {
		return order.TotalAmount
	}
	sum := decimal.Zero
	for _, it := range order.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}
