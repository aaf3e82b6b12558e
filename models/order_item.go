package models

import "github.com/shopspring/decimal"

type OrderItem struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"orderId"`
	FoodID    uint            `json:"foodId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"notes,omitempty"`
	Food      *Food           `json:"food,omitempty"`
}

// LineTotal is unit price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Name falls back to the food id when the backend did not embed the food.
func (i OrderItem) Name() string {
	if i.Food != nil && i.Food.Name != "" {
		return i.Food.Name
	}
	return "Item"
}

// OrderItemRequest is one line of CreateOrderRequest.
type OrderItemRequest struct {
	FoodID   uint   `json:"foodId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}
