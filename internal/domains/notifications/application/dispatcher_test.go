package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-server/internal/domains/notifications/adapters/memory"
	"github.com/Apurer/go-gin-shop-server/internal/domains/notifications/ports"
	ordersdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
)

type capturingConn struct {
	payloads [][]byte
	pushErr  error
}

func (c *capturingConn) Push(_ context.Context, payload []byte) error {
	if c.pushErr != nil {
		return c.pushErr
	}
	c.payloads = append(c.payloads, payload)
	return nil
}

func TestNotifyStatusChangeDeliversWirePayload(t *testing.T) {
	registry := memory.NewRegistry()
	conn := &capturingConn{}
	registry.Bind("customer-1", conn)

	fixed := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	dispatcher := NewDispatcher(registry, WithClock(func() time.Time { return fixed }))

	delivered := dispatcher.NotifyStatusChange(context.Background(), "customer-1", ordersdomain.StatusShipped)
	require.True(t, delivered)
	require.Len(t, conn.payloads, 1)

	var update StatusUpdate
	require.NoError(t, json.Unmarshal(conn.payloads[0], &update))
	assert.Equal(t, "New shipping status", update.Title)
	assert.Equal(t, "Your last order shipping status has been updated to shipped", update.Message)
	assert.Equal(t, "order_status_update", update.Type)
	assert.Equal(t, "shipped", update.Status)
	assert.Equal(t, "2026-03-14T09:26:53Z", update.Timestamp)
}

func TestNotifyStatusChangeWithoutConnection(t *testing.T) {
	dispatcher := NewDispatcher(memory.NewRegistry())

	delivered := dispatcher.NotifyStatusChange(context.Background(), "customer-1", ordersdomain.StatusDelivered)
	assert.False(t, delivered)
}

func TestNotifyStatusChangeSwallowsPushFailure(t *testing.T) {
	registry := memory.NewRegistry()
	registry.Bind("customer-1", &capturingConn{pushErr: errors.New("connection reset")})

	dispatcher := NewDispatcher(registry)

	delivered := dispatcher.NotifyStatusChange(context.Background(), "customer-1", ordersdomain.StatusShipped)
	assert.False(t, delivered)
}

func TestNotifyStatusChangeTargetsOnlyTheOwner(t *testing.T) {
	registry := memory.NewRegistry()
	owner := &capturingConn{}
	bystander := &capturingConn{}
	registry.Bind("customer-1", owner)
	registry.Bind("customer-2", bystander)

	dispatcher := NewDispatcher(registry)

	delivered := dispatcher.NotifyStatusChange(context.Background(), "customer-1", ordersdomain.StatusDelivered)
	require.True(t, delivered)
	assert.Len(t, owner.payloads, 1)
	assert.Empty(t, bystander.payloads)
}

var _ ports.Conn = (*capturingConn)(nil)
