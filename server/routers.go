// Package shopserver wires HTTP transport for the shop API.
package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiHandleFunctions groups the transport handlers for every bounded context.
type ApiHandleFunctions struct {
	OrdersAPI        OrdersAPI
	UsersAPI         UsersAPI
	NotificationsAPI NotificationsAPI
}

// NewRouter builds a gin engine with all routes registered. The authn
// middleware guards the order routes; the websocket endpoint performs its
// own credential check so header-less browser clients can pass the token as
// a query parameter.
func NewRouter(handlers ApiHandleFunctions, authn gin.HandlerFunc) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", healthz)

	v1 := router.Group("/v1")

	users := v1.Group("/users")
	users.POST("/register", handlers.UsersAPI.RegisterUser)
	users.GET("/login", handlers.UsersAPI.LoginUser)

	orders := v1.Group("/orders", authn)
	orders.POST("", handlers.OrdersAPI.PlaceOrder)
	orders.GET("", handlers.OrdersAPI.ListOrders)
	orders.GET("/:orderId", handlers.OrdersAPI.GetOrderById)
	orders.PUT("/:orderId/status", handlers.OrdersAPI.UpdateOrderStatus)

	router.GET("/ws/notifications", handlers.NotificationsAPI.Connect)

	return router
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
