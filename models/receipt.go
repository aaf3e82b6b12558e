package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the locally journaled copy of a printed bill slip.
type Receipt struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"not null;index" json:"order_id"`
	BillID        uint            `gorm:"not null;index" json:"bill_id"`
	OrderNumber   string          `gorm:"type:varchar(64)" json:"order_number"`
	InvoiceNumber string          `gorm:"type:varchar(64);not null" json:"invoice_number"`
	OrderType     string          `gorm:"type:varchar(20)" json:"order_type"`
	TableNumber   string          `gorm:"type:varchar(50)" json:"table_number"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"grand_total"`

	PaymentMethod    string `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentReference string `gorm:"type:varchar(100)" json:"payment_reference"`
	PaymentStatus    string `gorm:"type:varchar(20);not null" json:"payment_status"`

	FilePath     string        `gorm:"type:varchar(255)" json:"file_path"`
	ReceiptItems []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"receipt_items"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type ReceiptItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ReceiptID uint    `gorm:"not null" json:"receipt_id"`
	Receipt   Receipt `gorm:"-" json:"-"`

	FoodID    uint            `gorm:"not null" json:"food_id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Notes     string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
