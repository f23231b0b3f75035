package ai

import (
	"context"
	"fmt"
	"log/slog"

	"echo/internal/config"
)

// NewClient creates and returns a Client based on the provided configuration.
// It acts as a factory, selecting either the OpenAI-compatible or Gemini
// implementation. Returns ErrNoAPIKey when no credential is configured.
func NewClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	log.Info("Initializing AI client", "backend", cfg.Backend, "model", cfg.Model)

	switch cfg.Backend {
	case "openai":
		return newOpenAIClient(cfg, log), nil
	case "gemini":
		client, err := newGeminiClient(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown AI backend specified: %s", cfg.Backend)
	}
}
