package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
)

// StatusNotifier delivers a best-effort status-change notification to the
// owning customer. The returned flag reports delivery; it is never an error,
// because a missed push must not fail the triggering mutation.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, customerID string, status domain.Status) bool
}

// NoopNotifier is a safe default when no live-connection transport is wired.
var NoopNotifier StatusNotifier = noopNotifier{}

type noopNotifier struct{}

func (noopNotifier) NotifyStatusChange(context.Context, string, domain.Status) bool { return false }
