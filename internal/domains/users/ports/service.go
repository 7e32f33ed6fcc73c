package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
)

// ErrInvalidCredentials covers every login failure so callers cannot tell a
// missing account from a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Service exposes users bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (Session, error)
}
