package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	cartpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/persistence/postgres"
	platformpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/postgres"
)

// Administrative job that wipes every cart and line item, paid history
// included. Run it only against test or staging environments.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge carts")
	}

	repo := cartpostgres.NewRepository(db)
	if err := repo.DeleteAll(ctx); err != nil {
		log.Fatalf("failed to purge carts: %v", err)
	}
	log.Printf("cart purge completed")
}
