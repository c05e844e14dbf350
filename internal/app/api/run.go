package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	ezserver "github.com/LienoPC/EZ-Electronics-sub000/go"

	cartcatalog "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/memory"
	cartobs "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/persistence/postgres"
	cartworkflows "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/workflows"
	cartapp "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/application"
	cartports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
	productmemory "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/adapters/memory"
	productpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/adapters/persistence/postgres"
	productapp "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/application"
	productports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/ports"
	usermemory "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/adapters/memory"
	userpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/application"
	userports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/ports"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/platform/migrations"
	platformobservability "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/observability"
	platformpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/postgres"
)

// Run boots the HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "ezelectronics-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
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

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	productRepo := buildProductRepository(db, logger)
	productService := productapp.NewService(productRepo)

	cartRepo := buildCartRepository(db, productRepo, logger)
	coreCartService := cartapp.NewService(cartRepo, cartcatalog.NewInventoryStore(productRepo))
	cartService := cartobs.New(
		coreCartService,
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	var checkout cartports.WorkflowOrchestrator = cartworkflows.NewInlineCheckout(cartService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		checkout = cartworkflows.NewTemporalCheckout(temporalClient)
		logger.Info("Temporal checkout enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	userService := userapp.NewService(buildUserStores(db, cfg.SessionTTL, logger))

	handlers := ezserver.ApiHandleFunctions{
		CartAPI:    ezserver.NewCartAPI(cartService, checkout, userService),
		ProductAPI: ezserver.NewProductAPI(productService, userService),
		UserAPI:    ezserver.NewUserAPI(userService),
	}

	router := ezserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildProductRepository(db *gorm.DB, logger *slog.Logger) productports.Repository {
	if db == nil {
		logger.Warn("using in-memory product repository")
		return productmemory.NewRepository()
	}
	logger.Info("product repository configured with postgres")
	return productpostgres.NewRepository(db)
}

func buildCartRepository(db *gorm.DB, products productports.Repository, logger *slog.Logger) cartports.Repository {
	if db == nil {
		logger.Warn("using in-memory cart repository")
		return cartmemory.NewRepository(products)
	}
	logger.Info("cart repository configured with postgres")
	return cartpostgres.NewRepository(db)
}

func buildUserStores(db *gorm.DB, sessionTTL time.Duration, logger *slog.Logger) (userports.Repository, userports.SessionStore) {
	if db == nil {
		logger.Warn("using in-memory user repository and session store")
		return usermemory.NewRepository(), usermemory.NewSessionStore()
	}
	return userpostgres.NewRepository(db), userpostgres.NewSessionStore(db, sessionTTL)
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
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
