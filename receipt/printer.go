package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/checkout"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// 80mm thermal roll
const (
	slipWidth  = 80.0
	lineHeight = 4.5
	margin     = 4.0
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Printer renders slips to RECEIPT_DIR and journals them in the database.
type Printer struct {
	db  *gorm.DB
	dir string
	// OnPrinted is called with the stored receipt.
	OnPrinted func(models.Receipt)
}

func NewPrinter(db *gorm.DB, dir string) *Printer {
	return &Printer{db: db, dir: dir}
}

var _ checkout.Printer = (*Printer)(nil)

func (p *Printer) Print(ctx context.Context, slip checkout.Slip) error {
	rec := Build(slip)

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("create receipt dir: %w", err)
	}
	name := unsafeName.ReplaceAllString(rec.InvoiceNumber, "_")
	path := filepath.Join(p.dir, fmt.Sprintf("%s-%d.pdf", name, slip.Order.ID))
	if err := render(Rows(slip), path); err != nil {
		return err
	}
	rec.FilePath = path

	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("journal receipt %s: %w", rec.InvoiceNumber, err)
	}
	utils.InfoLogger.Printf("Receipt %s printed to %s", rec.InvoiceNumber, path)

	if p.OnPrinted != nil {
		p.OnPrinted(rec)
	}
	return nil
}

func render(rows []Row, path string) error {
	height := margin*2 + lineHeight*float64(len(rows)+4)
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: slipWidth, Ht: height},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	width := slipWidth - 2*margin
	for i, r := range rows {
		style := ""
		if r.Bold {
			style = "B"
		}
		pdf.SetFont("Courier", style, 8)

		// header and footer lines are centred
		if r.Right == "" && (i == 0 || i >= len(rows)-3) {
			pdf.CellFormat(width, lineHeight, r.Left, "", 1, "C", false, 0, "")
			continue
		}
		pdf.CellFormat(width/2, lineHeight, r.Left, "", 0, "L", false, 0, "")
		pdf.CellFormat(width/2, lineHeight, r.Right, "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write receipt %s: %w", path, err)
	}
	return nil
}

// Recent lists journaled receipts, newest first.
func (p *Printer) Recent(ctx context.Context, limit int) ([]models.Receipt, error) {
	if limit <= 0 {
		limit = 20
	}
	var receipts []models.Receipt
	err := p.db.WithContext(ctx).
		Preload("ReceiptItems").
		Order("created_at DESC").
		Limit(limit).
		Find(&receipts).Error
	return receipts, err
}

// ByOrder returns the latest receipt printed for an order.
func (p *Printer) ByOrder(ctx context.Context, orderID uint) (models.Receipt, error) {
	var rec models.Receipt
	err := p.db.WithContext(ctx).
		Preload("ReceiptItems").
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&rec).Error
	return rec, err
}
