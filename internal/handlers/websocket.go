package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kofiasare/driverhire-backend/internal/services"
)

// WebSocketHandler upgrades authenticated connections and hands them to
// the hub.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		userType := c.GetString("userType")

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, userType)
	}
}
