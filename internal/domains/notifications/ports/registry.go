package ports

import "context"

// Conn is a live push channel to one authenticated session.
type Conn interface {
	Push(ctx context.Context, payload []byte) error
}

// Registry tracks the single live connection per customer identity.
// A rebind replaces the previous connection; unbinding a connection that
// is no longer current is a no-op.
type Registry interface {
	Bind(identity string, conn Conn)
	Unbind(identity string, conn Conn)
	Lookup(identity string) (Conn, bool)
	Count() int
}
