package engine

import (
	"context"
	"strings"

	"echo/internal/ai"
	"echo/internal/store"
)

// greetings are answered locally so a bare "hello" works without an AI key.
var greetings = map[string]string{
	"hello":      "Hello! I'm ECHO. How can I help you today?",
	"hi":         "Hi there! What can I do for you?",
	"hey":        "Hey! How can I help?",
	"hello echo": "Hello! I'm ECHO. How can I help you today?",
	"hi echo":    "Hi there! What can I do for you?",
	"hey echo":   "Hey! How can I help?",
}

func (e *Engine) handleClearConversation(ctx context.Context) Response {
	if err := e.store.ClearConversation(ctx); err != nil {
		e.log.ErrorContext(ctx, "Failed to clear conversation history", "error", err)
		return Response{Text: "Error clearing conversation history. Please try again."}
	}
	return Response{Text: "Conversation history cleared. Starting fresh!"}
}

// handleConversation is the fallback for everything the dispatch chain does
// not claim: free-form chat against the AI collaborator, with the persisted
// history as context.
func (e *Engine) handleConversation(ctx context.Context, command string) Response {
	lower := strings.ToLower(strings.TrimSpace(command))
	lower = strings.TrimRight(lower, "!.?")
	if reply, ok := greetings[lower]; ok {
		return Response{Text: reply}
	}
	if strings.Contains(lower, "how are you") {
		return Response{Text: "I'm doing great, thanks for asking! How can I help you?"}
	}
	if reply, ok := moodReply(lower); ok {
		return Response{Text: reply}
	}

	if e.ai == nil {
		return Response{
			Text:   "AI chat is not configured. Set ECHO_AI_API_KEY to enable conversation.",
			Action: ActionError,
		}
	}

	history, err := e.store.LoadConversation(ctx)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to load conversation history", "error", err)
		history = nil
	}
	if e.maxHistory > 0 && len(history) > e.maxHistory {
		history = history[len(history)-e.maxHistory:]
	}

	reply, err := e.ai.GenerateReply(ctx, history, command)
	if err != nil {
		e.log.ErrorContext(ctx, "AI reply failed", "error", err)
		return Response{
			Text:   "I encountered an error processing your message. Please try again.",
			Action: ActionError,
		}
	}
	reply = ai.SanitizeVoice(reply)

	now := timeNow()
	err = e.store.AppendConversation(ctx,
		store.ConversationEntry{Role: store.RoleUser, Content: command, Timestamp: now},
		store.ConversationEntry{Role: store.RoleAssistant, Content: reply, Timestamp: now},
	)
	if err != nil {
		e.log.WarnContext(ctx, "Failed to persist conversation turn", "error", err)
	}

	return Response{Text: reply, Action: ActionAIResponse}
}
