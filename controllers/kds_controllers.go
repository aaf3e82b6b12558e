package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type KDSController struct {
	Hub      *kds.KDSHub
	upgrader websocket.Upgrader
}

func NewKDSController(hub *kds.KDSHub, allowedOrigin string) *KDSController {
	return &KDSController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "*" || origin == allowedOrigin
			},
		},
	}
}

// KDSHandler -> dashboard websocket; pushes only, client messages are ignored
func (kc *KDSController) KDSHandler(c *gin.Context) {
	s := staff(c)

	ws, err := kc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Errorf("Websocket upgrade failed: %v", err)
		return
	}

	kc.Hub.RegisterClient(ws, s.Role)
	utils.InfoLogger.Printf("Dashboard connected: user %d (%s)", s.ID, s.Role)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kc.Hub.UnregisterClient(ws)
	utils.InfoLogger.Printf("Dashboard disconnected: user %d", s.ID)
}
