package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/utils"
)

// CheckoutLogger records the outcome of every settlement call for an order.
func CheckoutLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("order_id")
		utils.InfoLogger.Printf("Checkout %s %s for order %s", c.Request.Method, c.FullPath(), orderID)

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			utils.InfoLogger.Printf("Checkout call succeeded for order %s", orderID)
		} else {
			utils.ErrorLogger.Errorf("Checkout call failed for order %s with status %d", orderID, status)
		}
	}
}
