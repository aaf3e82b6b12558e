package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(svc *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: svc}
}

// GetAllNotifications -> newest realtime alerts first
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	list, err := nc.Notifications.List(c.Request.Context(), queryInt(c, "limit", 50))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", list)
}
