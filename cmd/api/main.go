package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/app/api"
)

func main() {
	ctx := context.Background()
	if err := api.Run(ctx); err != nil {
		slog.Error("api exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
