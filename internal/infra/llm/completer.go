package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
	"github.com/yanqian/ethix-logistics/internal/infra/config"
	"github.com/yanqian/ethix-logistics/internal/infra/llm/chatgpt"
	"github.com/yanqian/ethix-logistics/internal/infra/llm/gemini"
)

// NewCompleter builds the advisor completer for the configured provider.
// It returns nil without error when no API key is set.
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (advisor.Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, nil
	}
	switch cfg.Provider {
	case config.ProviderGemini:
		completer, err := gemini.NewCompleter(ctx, cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return completer, nil
	case config.ProviderOpenAI:
		client, err := chatgpt.NewClient(cfg.APIKey, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		return chatgpt.NewCompleter(client, cfg.Model, cfg.Temperature), nil
	}
	return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
}
