package shopserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	platformauth "github.com/Apurer/go-gin-shop-server/internal/platform/auth"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (platformauth.Claims, error)
}

const actorContextKey = "shopserver.actor"

// AuthMiddleware authenticates Bearer tokens and stores the resulting actor
// in the request context.
func AuthMiddleware(verifier TokenVerifier, responder *apierrors.Responder) gin.HandlerFunc {
	if responder == nil {
		responder = apierrors.DefaultResponder
	}
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid bearer token"))
			c.Abort()
			return
		}
		c.Set(actorContextKey, ordersports.Actor{Identity: claims.Identity, Role: claims.Role})
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func actorFromContext(c *gin.Context) (ordersports.Actor, bool) {
	value, ok := c.Get(actorContextKey)
	if !ok {
		return ordersports.Actor{}, false
	}
	actor, ok := value.(ordersports.Actor)
	return actor, ok
}
