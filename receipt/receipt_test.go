package receipt

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/checkout"
	"github.com/yeremiapane/restaurant-pos/models"
)

func paidSlip(discount string) checkout.Slip {
	return checkout.Slip{
		RestaurantName: "Siam XLR",
		Order: models.Order{
			ID:          42,
			OrderNumber: "ord-20240101-abcd1234",
			Type:        models.OrderTypeDineIn,
			TableNumber: "7",
			Items: []models.OrderItem{
				{FoodID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(40), Notes: "Options: 12 Inch", Food: &models.Food{Name: "Margherita Pizza"}},
				{FoodID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(20)},
			},
		},
		Bill:   models.Bill{ID: 9},
		Totals: checkout.Quote(decimal.NewFromInt(100), models.Settings{TaxRate: decimal.NewFromInt(5)}, ptr(decimal.RequireFromString(discount))),
		Method: models.PaymentCash,
		PaidAt: time.Date(2024, 1, 1, 19, 30, 0, 0, time.UTC),
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func text(rows []Row) string {
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r.Left + "|" + r.Right + "\n")
	}
	return b.String()
}

func TestInvoiceLabelFallback(t *testing.T) {
	slip := paidSlip("0")
	assert.Equal(t, "ABCD1234", InvoiceLabel(slip))

	slip.Bill.InvoiceNumber = "INV-2024-0009"
	assert.Equal(t, "INV-2024-0009", InvoiceLabel(slip))
}

func TestRowsContent(t *testing.T) {
	out := text(Rows(paidSlip("10")))

	assert.Contains(t, out, "SIAM XLR|")
	assert.Contains(t, out, "INV: ABCD1234|DATE: 01/01/2024")
	assert.Contains(t, out, "TABLE: 7 (DineIn)|TIME: 07:30 PM")
	assert.Contains(t, out, "MARGHERITA PIZZA|$80.00")
	assert.Contains(t, out, "  2 PCS x $40.00|")
	assert.Contains(t, out, "ITEM|$20.00")
	assert.Contains(t, out, "SUB TOTAL:|$100.00")
	assert.Contains(t, out, "VAT (5%):|$5.00")
	assert.Contains(t, out, "DISCOUNT:|-$10.00")
	assert.Contains(t, out, "NET AMOUNT:|$95.00")
	assert.Contains(t, out, "PAYMENT TYPE:|CASH")
	assert.Contains(t, out, "STATUS:|PAID")
	assert.NotContains(t, out, "REF:")
}

func TestRowsOmitZeroDiscount(t *testing.T) {
	out := text(Rows(paidSlip("0")))
	assert.NotContains(t, out, "DISCOUNT")
	assert.Contains(t, out, "NET AMOUNT:|$105.00")
}

func TestPrintWritesPDFAndJournals(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Receipt{}, &models.ReceiptItem{}))

	dir := filepath.Join(t.TempDir(), "receipts")
	p := NewPrinter(db, dir)
	var printed []models.Receipt
	p.OnPrinted = func(r models.Receipt) { printed = append(printed, r) }

	require.NoError(t, p.Print(context.Background(), paidSlip("10")))

	require.Len(t, printed, 1)
	raw, err := os.ReadFile(printed[0].FilePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))

	rec, err := p.ByOrder(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "ABCD1234", rec.InvoiceNumber)
	assert.Equal(t, StatusPaid, rec.PaymentStatus)
	assert.True(t, rec.GrandTotal.Equal(decimal.NewFromInt(95)))
	require.Len(t, rec.ReceiptItems, 2)
	assert.Equal(t, "Margherita Pizza", rec.ReceiptItems[0].Name)

	recent, err := p.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}
