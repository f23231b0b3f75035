package engine

import "strings"

// systemKeywords gates system commands apart from free-form conversation.
// Order matters: the first keyword found in the input is the one reported,
// so more specific phrases sit before the generic words they contain.
var systemKeywords = []string{
	"open google", "open youtube", "open chatgpt", "open whatsapp",
	"open github", "open spotify", "open gmail", "open calculator",
	"send whatsapp", "whatsapp send", "send message",
	"play music", "play ",
	"screenshot", "take picture", "photo",
	"generate image", "create image", "draw", "make image",
	"time", "date",
	"weather",
	"battery",
	"news", "article",
	"system info", "system status",
	"create file", "read file",
	"note ", "list notes", "show notes",
	"remind me", "list reminders", "show reminders",
	"timer", "set timer",
	"convert", "calculate", "what is",
	"define", "meaning of",
	"joke", "funny",
	"quote", "motivate me", "inspire me",
	"mood", "how am i", "how do i feel", "feeling",
	"listen", "voice command",
	"search", "wikipedia",
	"clear conversation", "reset chat",
	"help", "add contact", "remove contact", "list contacts", "search contact",
	"message",
	"exit", "quit", "goodbye", "bye",
}

// Classify reports whether command is a system command rather than free-form
// conversation, and which keyword triggered the classification. Matching is
// case-insensitive substring containment over the fixed keyword list.
func Classify(command string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(command))
	for _, keyword := range systemKeywords {
		if strings.Contains(lower, keyword) {
			return keyword, true
		}
	}
	return "", false
}
