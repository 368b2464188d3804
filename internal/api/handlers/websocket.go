package handlers

import (
	"friend-service/internal/api/middleware"
	"friend-service/internal/websocket"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
)

type WSHandler struct {
	hub      *websocket.Hub
	upgrader *gws.Upgrader
}

func NewWSHandler(hub *websocket.Hub, allowedOrigins []string) *WSHandler {
	return &WSHandler{hub: hub, upgrader: websocket.NewUpgrader(allowedOrigins)}
}

// HandleWebSocket godoc
// @Summary Friend request notifications
// @Description Upgrade to a WebSocket that streams friend request events addressed to the caller
// @Tags websocket
// @Param token query string false "Session token, for clients that cannot set headers"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /ws/notifications [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	websocket.ServeWS(h.hub, h.upgrader, c.Writer, c.Request, middleware.UserID(c))
}
