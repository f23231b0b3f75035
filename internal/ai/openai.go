package ai

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"echo/internal/config"
	"echo/internal/store"
)

// openAIClient implements Client against any OpenAI-compatible chat
// completions endpoint. The default base URL points at Groq.
type openAIClient struct {
	client      openai.Client
	log         *slog.Logger
	model       string
	instruction string
	temperature float64
	maxTokens   int
}

func newOpenAIClient(cfg config.AIConfig, log *slog.Logger) *openAIClient {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	)

	return &openAIClient{
		client:      client,
		log:         log.With("component", "openai_client"),
		model:       cfg.Model,
		instruction: cfg.Instruction,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (c *openAIClient) GenerateReply(ctx context.Context, history []store.ConversationEntry, message string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(c.instruction))

	for _, entry := range history {
		switch entry.Role {
		case store.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(entry.Content))
		default:
			messages = append(messages, openai.UserMessage(entry.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	c.log.DebugContext(ctx, "Requesting chat completion", "model", c.model, "history_len", len(history))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               openai.ChatModel(c.model),
		Temperature:         openai.Float(c.temperature),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty message content")
	}

	return content, nil
}
