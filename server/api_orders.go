package shopserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

// OrdersAPI wires HTTP transport with the orders bounded context service and
// workflows.
type OrdersAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
	responder *apierrors.Responder
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator, responder *apierrors.Responder) OrdersAPI {
	if responder == nil {
		responder = apierrors.DefaultResponder
	}
	return OrdersAPI{service: service, workflows: workflows, responder: responder}
}

// PlaceOrderRequest is the payload for order placement.
type PlaceOrderRequest struct {
	Items []ordermapper.Item `json:"items" binding:"required"`
}

// ListOrdersResponse carries one page of orders with pagination metadata.
type ListOrdersResponse struct {
	Orders     []ordermapper.Order `json:"orders"`
	Pagination pagination.Meta     `json:"pagination"`
}

// UpdateOrderStatusRequest is the payload for a status transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Post /v1/orders
// Place a new order
func (api *OrdersAPI) PlaceOrder(c *gin.Context) {
	actor, ok := api.requireActor(c)
	if !ok {
		return
	}
	var payload PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, api.responder, err)
		return
	}
	order, err := api.placeOrder(c.Request.Context(), actor, ordermapper.ToDomainItems(payload.Items))
	if err != nil {
		respondOrderServiceError(c, api.responder, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

func (api *OrdersAPI) placeOrder(ctx context.Context, actor ordersports.Actor, items []ordersdomain.Item) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, actor, items)
	}
	return api.service.PlaceOrder(ctx, actor, items)
}

// Get /v1/orders
// List orders visible to the caller
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	actor, ok := api.requireActor(c)
	if !ok {
		return
	}
	query := ordersports.ListQuery{
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "limit"),
		Status:   c.Query("status"),
	}
	orders, meta, err := api.service.ListOrders(c.Request.Context(), actor, query)
	if err != nil {
		respondOrderServiceError(c, api.responder, err)
		return
	}
	c.JSON(http.StatusOK, ListOrdersResponse{
		Orders:     ordermapper.FromDomainOrders(orders),
		Pagination: meta,
	})
}

// Get /v1/orders/:orderId
// Fetch one order
func (api *OrdersAPI) GetOrderById(c *gin.Context) {
	actor, ok := api.requireActor(c)
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), actor, c.Param("orderId"))
	if err != nil {
		respondOrderServiceError(c, api.responder, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Put /v1/orders/:orderId/status
// Transition an order's shipping status
func (api *OrdersAPI) UpdateOrderStatus(c *gin.Context) {
	actor, ok := api.requireActor(c)
	if !ok {
		return
	}
	var payload UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, api.responder, err)
		return
	}
	order, err := api.service.UpdateStatus(c.Request.Context(), actor, c.Param("orderId"), payload.Status)
	if err != nil {
		respondOrderServiceError(c, api.responder, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

func (api *OrdersAPI) requireActor(c *gin.Context) (ordersports.Actor, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		api.responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing authentication context"))
		return ordersports.Actor{}, false
	}
	return actor, true
}

func intQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}
