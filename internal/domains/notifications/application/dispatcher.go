package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Apurer/go-gin-shop-server/internal/domains/notifications/ports"
	ordersdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
)

// StatusUpdate is the wire payload pushed to a connected customer when one
// of their orders changes shipping status.
type StatusUpdate struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

const (
	statusUpdateTitle = "New shipping status"
	statusUpdateType  = "order_status_update"
)

// Dispatcher resolves the recipient's live connection and pushes status
// updates. Delivery is best effort: a missing or broken connection is
// reported as not delivered, never as an error.
type Dispatcher struct {
	registry ports.Registry
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher creates a dispatcher backed by the given connection registry.
func NewDispatcher(registry ports.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: registry, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// NotifyStatusChange pushes a status update to the owning customer's live
// connection and reports whether delivery happened.
func (d *Dispatcher) NotifyStatusChange(ctx context.Context, customerID string, status ordersdomain.Status) bool {
	conn, ok := d.registry.Lookup(customerID)
	if !ok {
		d.log(ctx, slog.LevelDebug, "no live connection for customer", customerID, status, nil)
		return false
	}
	update := StatusUpdate{
		Title:     statusUpdateTitle,
		Message:   fmt.Sprintf("Your last order shipping status has been updated to %s", status),
		Type:      statusUpdateType,
		Status:    string(status),
		Timestamp: d.now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(update)
	if err != nil {
		d.log(ctx, slog.LevelError, "failed to encode status update", customerID, status, err)
		return false
	}
	if err := conn.Push(ctx, payload); err != nil {
		d.log(ctx, slog.LevelWarn, "failed to push status update", customerID, status, err)
		return false
	}
	return true
}

func (d *Dispatcher) log(ctx context.Context, level slog.Level, msg, customerID string, status ordersdomain.Status, err error) {
	if d.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("customer.id", customerID),
		slog.String("order.status", string(status)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	d.logger.LogAttrs(ctx, level, msg, attrs...)
}

var _ ordersports.StatusNotifier = (*Dispatcher)(nil)
