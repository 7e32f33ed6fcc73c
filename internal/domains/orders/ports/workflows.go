package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs the order placement flow, either inline or on a
// durable workflow engine.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, actor Actor, items []domain.Item) (*domain.Order, error)
}
