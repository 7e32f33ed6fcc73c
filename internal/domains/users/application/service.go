package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/users/ports"
	sharedauth "github.com/Apurer/go-gin-shop-server/internal/shared/auth"
)

// TokenIssuer signs a bearer token for an authenticated identity.
type TokenIssuer interface {
	Issue(identity string, role sharedauth.Role) (string, error)
	TTL() time.Duration
}

// Service implements registration and login for the users bounded context.
type Service struct {
	repo   ports.Repository
	tokens TokenIssuer
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService wires the repository and token authority.
func NewService(repo ports.Repository, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{repo: repo, tokens: tokens}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates a customer account. Elevated accounts are provisioned out
// of band, never through the public endpoint.
func (s *Service) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, email, password, sharedauth.RoleCustomer)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, mapError(err)
	}
	s.logInfo(ctx, "user registered", slog.String("user.id", user.ID), slog.String("user.name", user.Username))
	return user, nil
}

// Login verifies the password and issues a signed session token. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (ports.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return ports.Session{}, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ports.Session{}, mapError(ports.ErrInvalidCredentials)
		}
		return ports.Session{}, err
	}
	if !user.CheckPassword(password) {
		s.logWarn(ctx, "login rejected", slog.String("user.name", username))
		return ports.Session{}, mapError(ports.ErrInvalidCredentials)
	}
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return ports.Session{}, err
	}
	s.logInfo(ctx, "user logged in", slog.String("user.id", user.ID), slog.String("user.role", string(user.Role)))
	return ports.Session{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(s.tokens.TTL()),
		User:      user,
	}, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

var _ ports.Service = (*Service)(nil)
