package ai

import (
	"regexp"
	"strings"
)

var (
	boldRegex       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRegex     = regexp.MustCompile(`\*(.+?)\*`)
	codeRegex       = regexp.MustCompile("`(.+?)`")
	headerRegex     = regexp.MustCompile(`#+\s+`)
	bulletRegex     = regexp.MustCompile(`(?m)^\s*[-*•]\s+`)
	numberedRegex   = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	multiBlankRegex = regexp.MustCompile(`\n{3,}`)
)

// SanitizeVoice strips markdown emphasis, headers, and list markers from a
// model reply and collapses repeated blank lines, so the text reads naturally
// when spoken aloud.
func SanitizeVoice(text string) string {
	text = boldRegex.ReplaceAllString(text, "$1")
	text = italicRegex.ReplaceAllString(text, "$1")
	text = codeRegex.ReplaceAllString(text, "$1")
	text = headerRegex.ReplaceAllString(text, "")

	text = bulletRegex.ReplaceAllString(text, "")
	text = numberedRegex.ReplaceAllString(text, "")

	text = multiBlankRegex.ReplaceAllString(text, "\n\n")

	// Characters that sound wrong when read by a TTS engine.
	text = strings.ReplaceAll(text, "|", "")
	text = strings.ReplaceAll(text, "---", "")

	return strings.TrimSpace(text)
}
