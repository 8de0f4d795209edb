package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/domain/checkout"
	"github.com/yanqian/ethix-logistics/internal/domain/routing"
	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
	"github.com/yanqian/ethix-logistics/internal/infra/blobstore"
	"github.com/yanqian/ethix-logistics/internal/infra/config"
	"github.com/yanqian/ethix-logistics/internal/infra/llm"
	"github.com/yanqian/ethix-logistics/pkg/logger"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.NewWithWriter(os.Stdout, cfg.Log.Level)
}

func provideRoutingEngine(cfg *config.Config) *routing.Engine {
	return routing.NewEngine(cfg.Routing)
}

func provideCheckoutConfig(cfg *config.Config) checkout.Config {
	return cfg.Checkout
}

func provideAdvisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Prompt:      cfg.Advisor.Prompt,
		Timeout:     cfg.LLM.Timeout,
	}
}

// provideRemoteAdvisor returns nil when no credentials are configured or the
// client cannot be built; the advisor service then answers with the heuristic.
func provideRemoteAdvisor(cfg *config.Config, advisorCfg advisor.Config, logger *slog.Logger) advisor.Advisor {
	completer, err := llm.NewCompleter(context.Background(), cfg.LLM)
	if err != nil {
		logger.Error("failed to initialize llm client, using heuristic advisor", "provider", cfg.LLM.Provider, "error", err)
		return nil
	}
	if completer == nil {
		logger.Info("llm api key not set, using heuristic advisor")
		return nil
	}
	logger.Info("remote advisor enabled", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	return advisor.NewRemote(advisorCfg, completer, logger)
}

// provideBlobStore returns the configured backend together with the func that
// closes its client, or a memory store when the backend is unreachable.
func provideBlobStore(cfg *config.Config, logger *slog.Logger) (storefront.BlobStore, func()) {
	store, cleanup, err := blobstore.Open(context.Background(), cfg.Storage, logger)
	if err != nil {
		logger.Error("storage backend unavailable, falling back to memory store", "backend", cfg.Storage.Backend, "error", err)
		return blobstore.NewMemoryStore(), func() {}
	}
	logger.Info("storefront storage enabled", "backend", cfg.Storage.Backend)
	return store, cleanup
}
