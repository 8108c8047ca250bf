package handlers

import (
	"github.com/deshghuri/deshghuri-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler upgrades the connection and registers it with the hub
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := c.GetString("userRole")

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, role)
	}
}
