package routes

import (
	"github.com/gin-gonic/gin"

	"autogenics-server/models"
	ws "autogenics-server/websocket"
)

// RegisterWebSocketRoutes registers the realtime change-notification
// endpoint. Auth comes from a token query parameter since browsers
// cannot set headers on WebSocket upgrades.
func RegisterWebSocketRoutes(router *gin.RouterGroup, hub *ws.Hub) {
	router.GET("/ws", func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		ws.ServeWebSocket(hub, c.Writer, c.Request, user.ID, user.CanManageBookings())
	})
}
