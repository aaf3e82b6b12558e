package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type CartController struct {
	Carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

func (cc *CartController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Cart", cc.Carts.View(staff(c).ID))
}

// AddItem -> one unit of a food, or opens its customization dialog
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		FoodID uint   `json:"foodId" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := staff(c).ID
	res := cc.Carts.AddItem(c.Request.Context(), userID, req.FoodID, req.Notes)
	switch {
	case res.Skipped:
		utils.RespondJSON(c, http.StatusOK, "Item is not available", cc.Carts.View(userID))
	case res.Pending != nil:
		utils.RespondJSON(c, http.StatusOK, "Choose options", cc.Carts.View(userID))
	default:
		utils.RespondJSON(c, http.StatusOK, "Item added", cc.Carts.View(userID))
	}
}

// ToggleOption -> flips one option of the open dialog
func (cc *CartController) ToggleOption(c *gin.Context) {
	var req struct {
		Option string `json:"option" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pending, err := cc.Carts.Toggle(staff(c).ID, req.Option)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Option updated", pending)
}

func (cc *CartController) ConfirmOptions(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := staff(c).ID
	if _, err := cc.Carts.Confirm(userID, req.Notes); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added", cc.Carts.View(userID))
}

func (cc *CartController) CancelOptions(c *gin.Context) {
	userID := staff(c).ID
	cc.Carts.CancelPending(userID)
	utils.RespondJSON(c, http.StatusOK, "Customization cancelled", cc.Carts.View(userID))
}

// UpdateLine -> quantity delta and/or notes; unknown lines are ignored
func (cc *CartController) UpdateLine(c *gin.Context) {
	var req struct {
		Delta *int    `json:"delta"`
		Notes *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := staff(c).ID
	lineID := c.Param("line_id")
	view := cc.Carts.View(userID)
	if req.Notes != nil {
		view = cc.Carts.UpdateNotes(userID, lineID, *req.Notes)
	}
	if req.Delta != nil {
		view = cc.Carts.UpdateQuantity(userID, lineID, *req.Delta)
	}
	utils.RespondJSON(c, http.StatusOK, "Cart updated", view)
}

func (cc *CartController) RemoveLine(c *gin.Context) {
	view := cc.Carts.Remove(staff(c).ID, c.Param("line_id"))
	utils.RespondJSON(c, http.StatusOK, "Item removed", view)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", cc.Carts.Clear(staff(c).ID))
}
