package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Food is the backend's menu item as seen by the terminal. The terminal only
// ever reads snapshots of it.
type Food struct {
	ID                 uint            `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Image              string          `json:"image,omitempty"`
	CategoryID         uint            `json:"categoryId"`
	Status             bool            `json:"status"`
	Ingredients        string          `json:"ingredients,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Available reports whether the item can be put in a cart.
func (f Food) Available() bool {
	return f.Status
}

// DiscountedPrice is the unit price after the item's own discount percentage.
func (f Food) DiscountedPrice() decimal.Decimal {
	off := f.Price.Mul(f.DiscountPercentage).Div(decimal.NewFromInt(100))
	return f.Price.Sub(off)
}

// DiscountUpdate is one entry of the food_discounts_updated event.
type DiscountUpdate struct {
	ID                 uint            `json:"id"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}
