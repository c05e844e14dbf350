// Command session-purger deletes expired login sessions. It is meant
// to run periodically, for example as a cron job next to the API.
package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	userpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/postgres"
)

const runTimeout = 30 * time.Second

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		logger.Error("POSTGRES_DSN not set or connection failed, nothing to purge")
		os.Exit(1)
	}

	ttl := sessionTTL()
	store := userpostgres.NewSessionStore(db, ttl)
	if err := store.PurgeExpired(ctx); err != nil {
		logger.Error("session purge failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("session purge completed", slog.Duration("ttl", ttl))
}

func sessionTTL() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS"))
	if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	return userpostgres.DefaultSessionTTL
}
