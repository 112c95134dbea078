package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/target/carematch-ui/config"
	"github.com/target/carematch-ui/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger(os.Getenv("LOG_LEVEL"))
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	// .env may have changed the level.
	logger = bootstrap.InitLogger(cfg.LogLevel)

	logStartupInfo(ctx, logger, &cfg)
	return bootstrap.Run(ctx, &cfg, logger)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	routes := cfg.Navigation.RoutesFile
	if routes == "" {
		routes = "built-in"
	}
	logger.InfoContext(ctx, "starting carematch web front",
		"addr", cfg.HTTP.Addr,
		"storage", string(cfg.Storage.Backend),
		"api_base_url", cfg.API.BaseURL,
		"routes", routes,
		"unauthenticated_redirect", cfg.Navigation.UnauthenticatedRedirect,
		"dev", cfg.IsDev,
	)
}
