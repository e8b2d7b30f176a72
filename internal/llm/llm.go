package llm

import (
	"context"

	"github.com/sozercan/platform-compare/internal/config"
)

// New builds the DocumentService selected by cfg.Provider. Real providers
// without an API key yield ErrMissingCredential.
func New(ctx context.Context, cfg *config.LLMConfig) (DocumentService, error) {
	if cfg.Provider == config.ProviderMock {
		return NewMock(cfg.Model), nil
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	if cfg.Provider == config.ProviderOpenAI {
		svc, err := NewOpenAI(cfg)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}

	svc, err := NewGemini(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
