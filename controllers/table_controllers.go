package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/seating"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type TableController struct {
	Floor *services.FloorService
}

func NewTableController(floor *services.FloorService) *TableController {
	return &TableController{Floor: floor}
}

// GetAllTables -> table board with Available/Occupied/Reserved
func (tc *TableController) GetAllTables(c *gin.Context) {
	if c.Query("refresh") == "true" {
		tc.Floor.Invalidate()
	}
	board, err := tc.Floor.Board(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	counts := map[string]int{}
	for _, t := range board {
		counts[string(t.Status)]++
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", gin.H{
		"tables": board,
		"stats":  counts,
	})
}

// GetAvailableTables -> the hint shown under the table number field
func (tc *TableController) GetAvailableTables(c *gin.Context) {
	floor, err := tc.Floor.Snapshot(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available tables", seating.AvailableNumbers(floor))
}
