package api

import (
	"context"
	"fmt"

	"github.com/quocvuong92/operator-console/internal/config"
)

// Completer is the upstream text-generation collaborator: one system prompt
// and one user message in, one piece of text out.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Ensure both clients implement Completer
var _ Completer = (*ChatClient)(nil)
var _ Completer = (*GeminiClient)(nil)

// APIError represents an upstream error with status code
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient creates the Completer selected by cfg.Provider. cfg must
// already be loaded.
func NewClient(ctx context.Context, cfg *config.Config) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case config.ProviderGroq, config.ProviderOpenAI, "":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("provider %q requires a base URL", cfg.Provider)
		}
		return NewChatClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidProvider, cfg.Provider)
	}
}
