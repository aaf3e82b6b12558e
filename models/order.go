package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "DineIn"
	OrderTypeTakeaway OrderType = "Takeaway"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "New"
	OrderStatusInProgress OrderStatus = "InProgress"
	OrderStatusReady      OrderStatus = "Ready"
	OrderStatusServed     OrderStatus = "Served"
	OrderStatusPaid       OrderStatus = "Paid"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Terminal reports whether the order no longer holds its table.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// Order as stored by the backend.
type Order struct {
	ID            uint            `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	Type          OrderType       `json:"type"`
	Status        OrderStatus     `json:"status"`
	TableNumber   string          `json:"tableNumber,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	WaiterID      *uint           `json:"waiterId,omitempty"`
	SessionID     *uint           `json:"sessionId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Items         []OrderItem     `json:"items"`
}

// ShortNumber is the tail of the order number used on tickets and alerts.
func (o Order) ShortNumber(n int) string {
	if len(o.OrderNumber) <= n {
		return o.OrderNumber
	}
	return o.OrderNumber[len(o.OrderNumber)-n:]
}

// PaginatedOrders is the backend's GET /order envelope.
type PaginatedOrders struct {
	Data       []Order `json:"data"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
}

// CreateOrderRequest is the POST /order body.
type CreateOrderRequest struct {
	Type          OrderType          `json:"type"`
	TableNumber   string             `json:"tableNumber,omitempty"`
	CustomerName  string             `json:"customerName,omitempty"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	Items         []OrderItemRequest `json:"items"`
}

// CreateOrderResponse is the POST /order reply.
type CreateOrderResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}
