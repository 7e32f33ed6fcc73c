package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordersdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
)

// PersistOrderActivityName persists an order aggregate through the lifecycle service.
const PersistOrderActivityName = "orders.activities.PersistOrder"

// PlaceOrderCommand is the serializable payload handed to the activity.
type PlaceOrderCommand struct {
	Actor ordersports.Actor
	Items []ordersdomain.Item
}

// Activities groups activities operating on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the order lifecycle service into the activity bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PersistOrder places the order and returns the stored aggregate.
func (a *Activities) PersistOrder(ctx context.Context, command PlaceOrderCommand) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized", "customerId", command.Actor.Identity)
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "customerId", command.Actor.Identity, "items", len(command.Items))
	order, err := a.service.PlaceOrder(ctx, command.Actor, command.Items)
	if err != nil {
		logger.Error("PersistOrder activity failed", "customerId", command.Actor.Identity, "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID, "orderNumber", order.OrderNumber)
	return order, nil
}
