// Package receipt prints bill slips as PDF files and journals them locally.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-pos/checkout"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const (
	StatusPaid = "PAID"

	defaultName  = "RESTAURANT"
	footerThanks = "THANK YOU FOR YOUR VISIT!"
	footerAgain  = "PLEASE COME AGAIN"
)

// InvoiceLabel is the bill's invoice number, or the tail of the order number
// when the backend did not issue one.
func InvoiceLabel(slip checkout.Slip) string {
	if slip.Bill.InvoiceNumber != "" {
		return slip.Bill.InvoiceNumber
	}
	n := slip.Order.OrderNumber
	if len(n) > 8 {
		n = n[len(n)-8:]
	}
	return strings.ToUpper(n)
}

// Build turns a paid slip into the journal record.
func Build(slip checkout.Slip) models.Receipt {
	rec := models.Receipt{
		OrderID:          slip.Order.ID,
		BillID:           slip.Bill.ID,
		OrderNumber:      slip.Order.OrderNumber,
		InvoiceNumber:    InvoiceLabel(slip),
		OrderType:        string(slip.Order.Type),
		TableNumber:      slip.Order.TableNumber,
		Subtotal:         slip.Totals.Subtotal,
		TaxRate:          slip.Totals.TaxRate,
		Tax:              slip.Totals.Tax,
		Discount:         slip.Totals.Discount,
		GrandTotal:       slip.Totals.GrandTotal,
		PaymentMethod:    string(slip.Method),
		PaymentReference: slip.Reference,
		PaymentStatus:    StatusPaid,
		CreatedAt:        slip.PaidAt,
		UpdatedAt:        slip.PaidAt,
	}
	for _, it := range slip.Order.Items {
		rec.ReceiptItems = append(rec.ReceiptItems, models.ReceiptItem{
			FoodID:    it.FoodID,
			Name:      it.Name(),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.LineTotal(),
			Notes:     it.Notes,
			CreatedAt: slip.PaidAt,
			UpdatedAt: slip.PaidAt,
		})
	}
	return rec
}

// Row is one printed line: a left label and an optional right-aligned amount.
type Row struct {
	Left  string
	Right string
	Bold  bool
}

// Rows lays out the slip top to bottom.
func Rows(slip checkout.Slip) []Row {
	name := slip.RestaurantName
	if name == "" {
		name = defaultName
	}
	table := slip.Order.TableNumber
	if table == "" {
		table = "N/A"
	}
	paidAt := slip.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	rows := []Row{
		{Left: strings.ToUpper(name), Bold: true},
		{Left: "INV: " + InvoiceLabel(slip), Right: "DATE: " + paidAt.Format("02/01/2006")},
		{Left: fmt.Sprintf("TABLE: %s (%s)", table, slip.Order.Type), Right: "TIME: " + paidAt.Format("03:04 PM")},
		{Left: "DESCRIPTION", Right: "AMOUNT", Bold: true},
	}
	for _, it := range slip.Order.Items {
		rows = append(rows,
			Row{Left: strings.ToUpper(it.Name()), Right: utils.FormatCurrency(it.LineTotal()), Bold: true},
			Row{Left: fmt.Sprintf("  %d PCS x %s", it.Quantity, utils.FormatCurrency(it.UnitPrice))},
		)
	}

	t := slip.Totals
	rows = append(rows,
		Row{Left: "SUB TOTAL:", Right: utils.FormatCurrency(t.Subtotal)},
		Row{Left: fmt.Sprintf("VAT (%s%%):", utils.FormatPercent(t.TaxRate)), Right: utils.FormatCurrency(t.Tax)},
	)
	if t.Discount.IsPositive() {
		rows = append(rows, Row{Left: "DISCOUNT:", Right: "-" + utils.FormatCurrency(t.Discount)})
	}
	rows = append(rows,
		Row{Left: "NET AMOUNT:", Right: utils.FormatCurrency(t.GrandTotal), Bold: true},
		Row{Left: "PAYMENT TYPE:", Right: strings.ToUpper(string(slip.Method))},
	)
	if slip.Reference != "" {
		rows = append(rows, Row{Left: "REF:", Right: slip.Reference})
	}
	rows = append(rows,
		Row{Left: "STATUS:", Right: StatusPaid},
		Row{Left: footerThanks, Bold: true},
		Row{Left: footerAgain},
		Row{Left: strings.ToUpper(slip.Order.OrderNumber)},
	)
	return rows
}
