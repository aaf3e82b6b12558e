package models

import "github.com/shopspring/decimal"

// CartLine is one distinct (food, customization set) entry of an in-progress
// order. ID is local to the cart and never sent to the backend.
type CartLine struct {
	ID             string          `json:"id"`
	FoodID         uint            `json:"foodId"`
	Name           string          `json:"name"`
	Image          string          `json:"image,omitempty"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
	Notes          string          `json:"notes"`
	Customizations []string        `json:"customizations"`
}

// LineTotal is unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
