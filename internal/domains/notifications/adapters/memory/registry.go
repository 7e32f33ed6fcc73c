package memory

import (
	"sync"

	"github.com/Apurer/go-gin-shop-server/internal/domains/notifications/ports"
)

// Registry is a mutex-guarded in-process connection registry.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]ports.Conn
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]ports.Conn)}
}

// Bind registers conn as the live channel for identity, replacing any
// previous one.
func (r *Registry) Bind(identity string, conn ports.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[identity] = conn
}

// Unbind removes conn if it is still the current channel for identity.
// A stale unbind from a replaced connection leaves the newer one intact.
func (r *Registry) Unbind(identity string, conn ports.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.conns[identity]; ok && current == conn {
		delete(r.conns, identity)
	}
}

// Lookup returns the live channel for identity, if any.
func (r *Registry) Lookup(identity string) (ports.Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[identity]
	return conn, ok
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

var _ ports.Registry = (*Registry)(nil)
