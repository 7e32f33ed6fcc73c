package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/users/ports"
	sharedauth "github.com/Apurer/go-gin-shop-server/internal/shared/auth"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return ports.ErrDuplicateUsername
	}
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

type staticIssuer struct {
	token string
	err   error
}

func (i staticIssuer) Issue(string, sharedauth.Role) (string, error) { return i.token, i.err }
func (i staticIssuer) TTL() time.Duration                            { return time.Hour }

func TestRegisterCreatesCustomer(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, staticIssuer{token: "tok"})

	user, err := service.Register(context.Background(), "alice", "alice@example.com", "longenough")
	require.NoError(t, err)

	assert.Equal(t, sharedauth.RoleCustomer, user.Role)
	assert.NotEmpty(t, user.ID)

	stored, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	service := NewService(newFakeUserRepo(), staticIssuer{token: "tok"})

	_, err := service.Register(context.Background(), "alice", "", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	service := NewService(newFakeUserRepo(), staticIssuer{token: "tok"})

	_, err := service.Register(context.Background(), "alice", "", "longenough")
	require.NoError(t, err)

	_, err = service.Register(context.Background(), "alice", "", "otherlongpass")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, ports.ErrDuplicateUsername)
}

func TestLoginIssuesSession(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, staticIssuer{token: "signed-token"})

	registered, err := service.Register(context.Background(), "alice", "", "longenough")
	require.NoError(t, err)

	session, err := service.Login(context.Background(), "alice", "longenough")
	require.NoError(t, err)

	assert.Equal(t, "signed-token", session.Token)
	assert.Equal(t, registered.ID, session.User.ID)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), session.ExpiresAt, time.Minute)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	service := NewService(newFakeUserRepo(), staticIssuer{token: "tok"})

	_, err := service.Register(context.Background(), "alice", "", "longenough")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestLoginHidesAccountExistence(t *testing.T) {
	service := NewService(newFakeUserRepo(), staticIssuer{token: "tok"})

	_, missingErr := service.Login(context.Background(), "ghost", "whatever-pass")
	assert.ErrorIs(t, missingErr, ErrAuthentication)

	_, emptyErr := service.Login(context.Background(), "", "")
	assert.ErrorIs(t, emptyErr, ErrAuthentication)
}
