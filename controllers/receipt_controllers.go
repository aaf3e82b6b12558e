package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/receipt"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type ReceiptController struct {
	Printer *receipt.Printer
}

func NewReceiptController(printer *receipt.Printer) *ReceiptController {
	return &ReceiptController{Printer: printer}
}

// GetRecentReceipts -> receipts printed at this terminal
func (rc *ReceiptController) GetRecentReceipts(c *gin.Context) {
	list, err := rc.Printer.Recent(c.Request.Context(), queryInt(c, "limit", 20))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipts", list)
}

func (rc *ReceiptController) GetReceiptByOrder(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rec, err := rc.Printer.ByOrder(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no receipt printed for order %d", id))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt", rec)
}

// DownloadReceipt -> the printed PDF slip
func (rc *ReceiptController) DownloadReceipt(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rec, err := rc.Printer.ByOrder(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no receipt printed for order %d", id))
		return
	}
	if _, err := os.Stat(rec.FilePath); err != nil {
		utils.ErrorLogger.Errorf("Receipt file for order %d is missing: %v", id, err)
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("receipt file is missing"))
		return
	}
	c.FileAttachment(rec.FilePath, filepath.Base(rec.FilePath))
}
