package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WebsocketHandler upgrades and serves one notification connection.
type WebsocketHandler interface {
	Serve(c *gin.Context)
}

// NotificationsAPI exposes the live notification endpoint.
type NotificationsAPI struct {
	handler WebsocketHandler
}

// NewNotificationsAPI creates a NotificationsAPI backed by the websocket
// handler.
func NewNotificationsAPI(handler WebsocketHandler) NotificationsAPI {
	return NotificationsAPI{handler: handler}
}

// Get /ws/notifications
// Bind the caller's live connection into the session registry
func (api *NotificationsAPI) Connect(c *gin.Context) {
	if api.handler == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	api.handler.Serve(c)
}
