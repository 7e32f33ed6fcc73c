package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-server/internal/domains/notifications/ports"
)

type stubConn struct{ name string }

func (s *stubConn) Push(context.Context, []byte) error { return nil }

func TestBindAndLookup(t *testing.T) {
	registry := NewRegistry()
	conn := &stubConn{name: "a"}

	registry.Bind("customer-1", conn)

	got, ok := registry.Lookup("customer-1")
	require.True(t, ok)
	assert.Same(t, conn, got.(*stubConn))
	assert.Equal(t, 1, registry.Count())
}

func TestLookupUnknownIdentity(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.Lookup("nobody")
	assert.False(t, ok)
}

func TestRebindReplacesPreviousConnection(t *testing.T) {
	registry := NewRegistry()
	first := &stubConn{name: "first"}
	second := &stubConn{name: "second"}

	registry.Bind("customer-1", first)
	registry.Bind("customer-1", second)

	got, ok := registry.Lookup("customer-1")
	require.True(t, ok)
	assert.Same(t, second, got.(*stubConn))
	assert.Equal(t, 1, registry.Count())
}

func TestStaleUnbindKeepsNewerConnection(t *testing.T) {
	registry := NewRegistry()
	first := &stubConn{name: "first"}
	second := &stubConn{name: "second"}

	registry.Bind("customer-1", first)
	registry.Bind("customer-1", second)
	registry.Unbind("customer-1", first)

	got, ok := registry.Lookup("customer-1")
	require.True(t, ok)
	assert.Same(t, second, got.(*stubConn))
}

func TestUnbindIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	conn := &stubConn{name: "a"}

	registry.Bind("customer-1", conn)
	registry.Unbind("customer-1", conn)
	registry.Unbind("customer-1", conn)

	_, ok := registry.Lookup("customer-1")
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Count())
}

var _ ports.Conn = (*stubConn)(nil)
