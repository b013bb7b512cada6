package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gowheels/gowheels-backend/internal/middleware"
	"github.com/gowheels/gowheels-backend/internal/services"
)

// WebSocketHandler handles WebSocket connections
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.ContextUsername)
		category := c.GetString(middleware.ContextCategory)

		services.ServeWs(hub, c.Writer, c.Request, username, category)
	}
}
