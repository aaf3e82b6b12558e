package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentMobile PaymentMethod = "Mobile"
)

// Valid reports whether m is one of the methods the backend accepts.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

// NeedsReference reports whether the backend expects a reference token.
func (m PaymentMethod) NeedsReference() bool {
	return m == PaymentCard || m == PaymentMobile
}

// Bill is issued by the backend at checkout time.
type Bill struct {
	ID            uint            `json:"id"`
	OrderID       uint            `json:"orderId"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	IsPaid        bool            `json:"isPaid"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Transaction confirms a processed payment.
type Transaction struct {
	ID        uint            `json:"id"`
	BillID    uint            `json:"billId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type GenerateBillRequest struct {
	OrderID  uint            `json:"orderId"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
}

type ProcessPaymentRequest struct {
	BillID    uint            `json:"billId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	Reference string          `json:"reference,omitempty"`
}

type ProcessPaymentResponse struct {
	Message     string      `json:"message"`
	Transaction Transaction `json:"transaction"`
}
