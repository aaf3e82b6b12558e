package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// AuthMiddleware verifies the staff token issued by the backend and stores
// the caller's id and role on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header must use the Bearer scheme"))
			c.Abort()
			return
		}

		if !authenticate(c, strings.TrimPrefix(authHeader, "Bearer ")) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid or expired token"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, token string) bool {
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.InfoLogger.Printf("Rejected token from %s: %v", c.ClientIP(), err)
		return false
	}
	role := models.Role(claims.Role)
	switch role {
	case models.RoleAdmin, models.RoleCashier, models.RoleWaiter, models.RoleKitchenStaff:
	default:
		utils.InfoLogger.Printf("Rejected token with unknown role %q", claims.Role)
		return false
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxRole, role)
	return true
}

// CurrentStaff returns who AuthMiddleware let through.
func CurrentStaff(c *gin.Context) (models.Staff, bool) {
	id, ok := c.Get(ctxUserID)
	if !ok {
		return models.Staff{}, false
	}
	role, ok := c.Get(ctxRole)
	if !ok {
		return models.Staff{}, false
	}
	return models.Staff{ID: id.(uint), Role: role.(models.Role)}, true
}
