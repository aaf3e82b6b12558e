package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
}

func NewCheckoutController(svc *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: svc}
}

var errNoCheckout = errors.New("no checkout open for this order")

type payRequest struct {
	Method models.PaymentMethod `json:"method" binding:"required"`
}

// OpenCheckout -> starts (or resumes) the payment modal for an order
func (cc *CheckoutController) OpenCheckout(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := cc.Checkout.Open(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Checkout opened", view)
}

func (cc *CheckoutController) GetCheckout(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, ok := cc.Checkout.View(id)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errNoCheckout)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Checkout", view)
}

// SetDiscount -> cashier overrides the discount amount before billing
func (cc *CheckoutController) SetDiscount(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req struct {
		Discount decimal.Decimal `json:"discount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	view, err := cc.Checkout.SetDiscount(c.Request.Context(), id, req.Discount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Discount updated", view)
}

func (cc *CheckoutController) GenerateBill(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	view, err := cc.Checkout.GenerateBill(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill generated", view)
}

func (cc *CheckoutController) Pay(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	view, err := cc.Checkout.Pay(c.Request.Context(), id, req.Method)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment processed successfully", view)
}

// CompletePayment -> bill and pay in one call
func (cc *CheckoutController) CompletePayment(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	view, err := cc.Checkout.Checkout(c.Request.Context(), id, req.Method)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment processed successfully", view)
}

func (cc *CheckoutController) CloseCheckout(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	cc.Checkout.Close(id)
	utils.RespondJSON(c, http.StatusOK, "Checkout closed", nil)
}

func (cc *CheckoutController) GetMetrics(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Checkout metrics", cc.Checkout.Metrics())
}
