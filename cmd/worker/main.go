package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	cartcatalog "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/memory"
	cartobs "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/application"
	cartports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
	productmemory "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/adapters/memory"
	productpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/adapters/persistence/postgres"
	productports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/ports"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/platform/migrations"
	platformobservability "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/observability"
	platformpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/postgres"
	cartactivities "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/temporal/activities/cart"
	cartworkflows "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/temporal/workflows/cart"
)

func main() {
	ctx := context.Background()
	const serviceName = "ezelectronics-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cartRepo, productRepo, cleanupRepo := buildRepositories(ctx, logger)
	defer cleanupRepo()
	cartService := cartobs.New(
		cartapp.NewService(cartRepo, cartcatalog.NewInventoryStore(productRepo)),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)
	checkoutActivities := cartactivities.NewActivities(cartService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, cartworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(cartworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: cartworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(checkoutActivities.Checkout, activity.RegisterOptions{Name: cartactivities.CheckoutActivityName})

	logger.Info("worker listening", slog.String("taskQueue", cartworkflows.CheckoutTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (cartports.Repository, productports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		productRepo := productmemory.NewRepository()
		return cartmemory.NewRepository(productRepo), productRepo, cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("worker failed to run migrations", slog.String("error", err.Error()))
	}
	logger.Info("worker repositories configured with postgres")
	return cartpostgres.NewRepository(db), productpostgres.NewRepository(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
