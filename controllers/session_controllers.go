package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type SessionController struct {
	Sessions *services.SessionService
	Settings *services.SettingsService
}

func NewSessionController(sessions *services.SessionService, settings *services.SettingsService) *SessionController {
	return &SessionController{Sessions: sessions, Settings: settings}
}

// GetSession -> whether the cashier has an open till session
func (sc *SessionController) GetSession(c *gin.Context) {
	status, err := sc.Sessions.Status(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !status.Active {
		utils.RespondJSON(c, http.StatusOK, services.SessionMessage, status)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session active", status)
}

func (sc *SessionController) GetSettings(c *gin.Context) {
	st, err := sc.Settings.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Settings", st)
}

// ReloadSettings -> drop the cached rates and fetch them again
func (sc *SessionController) ReloadSettings(c *gin.Context) {
	st, err := sc.Settings.Reload(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Settings reloaded", st)
}
