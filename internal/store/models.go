package store

import "time"

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationEntry is a single exchange line in the persisted conversation
// history. Timestamps are serialized as RFC 3339 strings.
type ConversationEntry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Note is a persisted free-text note. IDs are dense and 1-based: a new note
// always gets len(notes)+1. There is no delete operation, so IDs are stable.
type Note struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Reminder is a persisted one-shot reminder created by the "remind me" and
// "set timer" commands.
type Reminder struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	At        time.Time `json:"at"`
	Announced bool      `json:"announced"`
}
