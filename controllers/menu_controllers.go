package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/catalog"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type MenuController struct {
	Catalog *catalog.Cache
}

func NewMenuController(cat *catalog.Cache) *MenuController {
	return &MenuController{Catalog: cat}
}

// GetAllMenus -> paged, searchable menu for the order screen
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	if err := mc.Catalog.EnsureFresh(c.Request.Context()); err != nil {
		utils.ErrorLogger.Errorf("Catalog refresh failed, serving last snapshot: %v", err)
	}

	filter := catalog.Filter{
		Keyword: c.Query("keyword"),
		Page:    queryInt(c, "page", 1),
		Take:    min(queryInt(c, "take", 12), catalog.MaxTake),
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		filter.CategoryID = uint(id)
	}

	foods, total := mc.Catalog.Foods(filter)
	utils.RespondJSON(c, http.StatusOK, "List of menus", gin.H{
		"foods": foods,
		"total": total,
		"page":  filter.Page,
		"take":  filter.Take,
	})
}

// GetAllCategories -> category tabs, sorted by name
func (mc *MenuController) GetAllCategories(c *gin.Context) {
	if err := mc.Catalog.EnsureFresh(c.Request.Context()); err != nil {
		utils.ErrorLogger.Errorf("Catalog refresh failed, serving last snapshot: %v", err)
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", mc.Catalog.Categories())
}

// RefreshMenu -> reload foods and categories from the backend
func (mc *MenuController) RefreshMenu(c *gin.Context) {
	if err := mc.Catalog.Refresh(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu refreshed", gin.H{"refreshedAt": mc.Catalog.RefreshedAt()})
}
