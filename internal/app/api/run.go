package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	shopserver "github.com/Apurer/go-gin-shop-server/server"

	notifmemory "github.com/Apurer/go-gin-shop-server/internal/domains/notifications/adapters/memory"
	notifws "github.com/Apurer/go-gin-shop-server/internal/domains/notifications/adapters/ws"
	notifapp "github.com/Apurer/go-gin-shop-server/internal/domains/notifications/application"
	ordersmemory "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	usersmemory "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/memory"
	userspostgres "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/Apurer/go-gin-shop-server/internal/domains/users/application"
	usersports "github.com/Apurer/go-gin-shop-server/internal/domains/users/ports"
	platformauth "github.com/Apurer/go-gin-shop-server/internal/platform/auth"
	"github.com/Apurer/go-gin-shop-server/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-shop-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

// Run boots the shop HTTP API with observability, repositories, live
// notifications, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "shop-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	orderRepo, userRepo, cleanupDB := buildRepositories(ctx, cfg, logger)
	defer cleanupDB()

	tokens := platformauth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	responder := apierrors.NewResponder("", cfg.Production())

	registry := notifmemory.NewRegistry()
	dispatcher := notifapp.NewDispatcher(registry, notifapp.WithLogger(logger))

	coreOrderService := ordersapp.NewService(
		orderRepo,
		ordersapp.WithNotifier(dispatcher),
		ordersapp.WithLogger(logger),
	)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline order placement", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	userService := usersapp.NewService(userRepo, tokens, usersapp.WithLogger(logger))
	wsHandler := notifws.NewHandler(registry, tokens, notifws.WithLogger(logger), notifws.WithResponder(responder))

	handlers := shopserver.ApiHandleFunctions{
		OrdersAPI:        shopserver.NewOrdersAPI(orderService, orderWorkflows, responder),
		UsersAPI:         shopserver.NewUsersAPI(userService, responder),
		NotificationsAPI: shopserver.NewNotificationsAPI(wsHandler),
	}

	router := shopserver.NewRouter(handlers, shopserver.AuthMiddleware(tokens, responder))
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("shop API listening", slog.String("addr", addr), slog.String("environment", cfg.Environment))
	if err := router.Run(addr); err != nil {
		logger.Error("shop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, usersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return ordersmemory.NewRepository(), usersmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), usersmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), usersmemory.NewRepository(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to apply schema migrations", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return ordersmemory.NewRepository(), usersmemory.NewRepository(), func() {}
	}
	logger.Info("repositories configured with postgres")
	return orderspostgres.NewRepository(db), userspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
