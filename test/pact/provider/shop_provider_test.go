//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/go-gin-shop-server/test/pact"

	ordersmemory "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	usersmemory "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/memory"
	usersapp "github.com/Apurer/go-gin-shop-server/internal/domains/users/application"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
	shopserver "github.com/Apurer/go-gin-shop-server/server"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestShopProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *ordersmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	tokens := pacttest.Tokens()
	responder := apierrors.NewResponder("", false)

	orderRepo := ordersmemory.NewRepository()
	orderService := ordersobs.New(ordersapp.NewService(orderRepo))
	workflows := ordersworkflows.NewInlineOrderWorkflows(orderService)

	userService := usersapp.NewService(usersmemory.NewRepository(), tokens)

	handlers := shopserver.ApiHandleFunctions{
		OrdersAPI: shopserver.NewOrdersAPI(orderService, workflows, responder),
		UsersAPI:  shopserver.NewUsersAPI(userService, responder),
	}
	router := shopserver.NewRouter(handlers, shopserver.AuthMiddleware(tokens, responder))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   orderRepo,
		server: server,
	}
}

// seedOrder stores a deterministic order owned by the pact customer. Seeding
// is idempotent so repeated state setups do not fail on duplicates.
func (a *contractProviderApp) seedOrder(t testing.TB, id string) {
	t.Helper()
	if _, err := a.repo.GetByID(context.Background(), id); err == nil {
		return
	} else if !errors.Is(err, ordersports.ErrNotFound) {
		require.NoError(t, err)
	}
	order, err := ordersdomain.NewOrder(pacttest.CustomerIdentity, []ordersdomain.Item{
		{ProductID: "pact-prod-1", ProductName: "Pact Mug", OwnerID: "pact-seller-1", Quantity: 2, LineCost: 7.5},
	})
	require.NoError(t, err)
	order.ID = id
	_, err = a.repo.Create(context.Background(), order)
	require.NoError(t, err)
}
