// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	apiserver "github.com/sozercan/platform-compare/api/server"
	"github.com/sozercan/platform-compare/internal/client"
	"github.com/sozercan/platform-compare/internal/compare"
	"github.com/sozercan/platform-compare/internal/config"
	"github.com/sozercan/platform-compare/internal/llm"
	"github.com/sozercan/platform-compare/internal/server"
	"github.com/sozercan/platform-compare/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := config.LoadConfig(flags)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	slog.SetDefault(cfg.Log.Logger(os.Stderr))

	docs, err := llm.New(context.Background(), &cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrMissingCredential):
		slog.Warn("API key is not set, compare requests will fail until it is configured", "provider", cfg.LLM.Provider)
	case err != nil:
		log.Fatalf("failed to create document service: %v", err)
	}

	svc := compare.New(docs, cfg.Documents, compare.WithCleanupTimeout(cfg.LLM.CleanupTimeout))

	page, err := web.New(client.BackendFunc(svc.Compare))
	if err != nil {
		log.Fatalf("failed to load form page: %v", err)
	}

	api := apiserver.New(cfg.Server, svc, page)
	srv := server.New(cfg.Server, api.Handler())

	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "provider", cfg.LLM.Provider)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
