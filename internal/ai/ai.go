// Package ai provides the chat-completion collaborator used by the
// conversational fallback. Two backends are supported: any OpenAI-compatible
// API (Groq by default) and Google's Gemini API.
package ai

import (
	"context"
	"errors"

	"echo/internal/store"
)

// ErrNoAPIKey indicates that no credential was configured for the selected
// backend. Callers are expected to degrade to an explicit configuration-error
// response rather than treating this as fatal.
var ErrNoAPIKey = errors.New("ai: api key not configured")

// Client generates a conversational reply from the trailing history and the
// new user message. History entries are expected to already be truncated to
// the configured context window by the caller.
type Client interface {
	GenerateReply(ctx context.Context, history []store.ConversationEntry, message string) (string, error)
}
