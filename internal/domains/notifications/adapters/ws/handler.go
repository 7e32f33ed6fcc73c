// Package ws upgrades authenticated requests to websocket connections and
// binds them into the notification registry.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Apurer/go-gin-shop-server/internal/domains/notifications/ports"
	platformauth "github.com/Apurer/go-gin-shop-server/internal/platform/auth"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (platformauth.Claims, error)
}

const defaultWriteTimeout = 5 * time.Second

// Handler serves the notification websocket endpoint.
type Handler struct {
	registry     ports.Registry
	verifier     TokenVerifier
	logger       *slog.Logger
	responder    *apierrors.Responder
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithResponder(responder *apierrors.Responder) Option {
	return func(h *Handler) {
		if responder != nil {
			h.responder = responder
		}
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(h *Handler) {
		if timeout > 0 {
			h.writeTimeout = timeout
		}
	}
}

// NewHandler creates a websocket handler bound to the registry and verifier.
func NewHandler(registry ports.Registry, verifier TokenVerifier, opts ...Option) *Handler {
	h := &Handler{
		registry:     registry,
		verifier:     verifier,
		responder:    apierrors.DefaultResponder,
		writeTimeout: defaultWriteTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// browsers cannot set an Authorization header on websocket
			// upgrades, so origin enforcement happens upstream
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Serve authenticates the request, upgrades it, and keeps the connection
// registered until the client disconnects.
func (h *Handler) Serve(c *gin.Context) {
	token := resolveCredential(c.Request)
	if token == "" {
		h.responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing credentials"))
		return
	}
	claims, err := h.verifier.Verify(token)
	if err != nil {
		h.responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid credentials"))
		return
	}

	socket, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake failure response
		h.logWarn(c.Request.Context(), "websocket upgrade failed", claims.Identity, err)
		return
	}
	conn := &wsConn{socket: socket, writeTimeout: h.writeTimeout}
	h.registry.Bind(claims.Identity, conn)
	h.logInfo(c.Request.Context(), "notification connection opened", claims.Identity)

	defer func() {
		h.registry.Unbind(claims.Identity, conn)
		_ = socket.Close()
		h.logInfo(c.Request.Context(), "notification connection closed", claims.Identity)
	}()

	// inbound frames are ignored; the read loop only detects disconnects
	for {
		if _, _, err := socket.ReadMessage(); err != nil {
			return
		}
	}
}

// resolveCredential extracts the bearer token, preferring the Authorization
// header over the token query parameter.
func resolveCredential(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header != "" {
		const prefix = "Bearer "
		if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
			return strings.TrimSpace(header[len(prefix):])
		}
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

func (h *Handler) logInfo(ctx context.Context, msg, identity string) {
	if h.logger == nil {
		return
	}
	h.logger.LogAttrs(ctx, slog.LevelInfo, msg, slog.String("customer.id", identity), slog.Int("connections", h.registry.Count()))
}

func (h *Handler) logWarn(ctx context.Context, msg, identity string, err error) {
	if h.logger == nil {
		return
	}
	h.logger.LogAttrs(ctx, slog.LevelWarn, msg, slog.String("customer.id", identity), slog.String("error", err.Error()))
}

// wsConn serializes writes onto a single websocket connection.
type wsConn struct {
	socket       *websocket.Conn
	mu           sync.Mutex
	writeTimeout time.Duration
}

// Push writes one text frame under a write deadline.
func (c *wsConn) Push(_ context.Context, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.socket.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	return c.socket.WriteMessage(websocket.TextMessage, payload)
}

var _ ports.Conn = (*wsConn)(nil)
