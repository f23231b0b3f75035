package engine

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// whatsappKeywords are stripped from the command when isolating the target
// and message. Longer phrases come first so "send whatsapp to" is removed as
// a whole rather than word by word.
var whatsappKeywords = []string{
	"send whatsapp to", "whatsapp send to", "send message to",
	"message", "send to", "whatsapp", "send",
}

var loosePhoneRegex = regexp.MustCompile(`(\+?\d{10,15})`)

// splitWhatsAppCommand separates a send command into its target and message.
// A colon is the explicit separator; without one the contact names, then a
// phone number, then leading words are tried in turn. ok is false when no
// plausible split exists.
func splitWhatsAppCommand(command string, contacts map[string]string) (target, message string, ok bool) {
	if idx := strings.Index(command, ":"); idx >= 0 {
		target = stripWhatsAppKeywords(command[:idx])
		message = strings.TrimSpace(command[idx+1:])
		return target, message, true
	}

	clean := stripWhatsAppKeywords(command)

	// Contact names first, longest name wins so "Mohammed Ali" beats "Ali".
	names := make([]string, 0, len(contacts))
	for name := range contacts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
		if err != nil {
			continue
		}
		if loc := re.FindStringIndex(clean); loc != nil {
			return name, strings.TrimSpace(clean[loc[1]:]), true
		}
	}

	if loc := loosePhoneRegex.FindStringIndex(clean); loc != nil {
		return clean[loc[0]:loc[1]], strings.TrimSpace(clean[loc[1]:]), true
	}

	words := strings.Fields(clean)
	if len(words) < 2 {
		return "", "", false
	}
	twoWord := strings.Join(words[:2], " ")
	if _, exists := contacts[twoWord]; exists {
		return twoWord, strings.Join(words[2:], " "), true
	}
	if titled := titleWords(twoWord); titled != twoWord {
		if _, exists := contacts[titled]; exists {
			return titled, strings.Join(words[2:], " "), true
		}
	}
	return words[0], strings.Join(words[1:], " "), true
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func stripWhatsAppKeywords(s string) string {
	for _, keyword := range whatsappKeywords {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// whatsappDigits normalizes a resolved phone number into the digit string
// WhatsApp links expect, defaulting bare 10-digit numbers to countryCode.
func whatsappDigits(phone, countryCode string) string {
	digits := regexp.MustCompile(`[^\d]`).ReplaceAllString(phone, "")
	if !strings.HasPrefix(phone, "+") && len(digits) == 10 {
		digits = strings.TrimPrefix(countryCode, "+") + digits
	}
	return digits
}

// whatsappLinks builds the desktop deep link and the web fallback for a
// message to digits.
func whatsappLinks(digits, message string) (protocol, web string) {
	encoded := url.QueryEscape(message)
	protocol = fmt.Sprintf("whatsapp://send?phone=%s&text=%s", digits, encoded)
	web = fmt.Sprintf("https://web.whatsapp.com/send?phone=%s&text=%s", digits, encoded)
	return protocol, web
}

// handleSendWhatsApp resolves the target, opens the WhatsApp deep link, and
// reports what the user still has to do (press Enter in WhatsApp).
func (e *Engine) handleSendWhatsApp(ctx context.Context, command string) Response {
	contacts, err := e.store.LoadContacts(ctx)
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to load contacts", "error", err)
		contacts = map[string]string{}
	}

	target, message, ok := splitWhatsAppCommand(command, contacts)
	if !ok || target == "" || message == "" {
		return Response{Text: "Please provide both contact/number and message. Examples:\n" +
			"- send whatsapp to John : Hello there\n" +
			"- whatsapp Mom : On my way home\n" +
			"- message +919876543210 : Meeting at 5pm"}
	}

	resolution := ResolveTarget(target, contacts)
	switch resolution.Status {
	case StatusNotFound:
		return Response{Text: fmt.Sprintf("Contact '%s' not found. Add contact first with:\n"+
			"add contact %s : %sXXXXXXXXXX\n"+
			"Or use the phone number directly.", target, target, e.countryCode)}
	case StatusAmbiguous:
		return Response{Text: fmt.Sprintf("Multiple contacts found: %s. Please be more specific.",
			strings.Join(resolution.Candidates, ", "))}
	}

	digits := whatsappDigits(resolution.Phone, e.countryCode)
	protocol, web := whatsappLinks(digits, message)

	if e.host != nil && e.host.CanOpenURL() {
		if err := e.host.OpenURL(ctx, protocol); err != nil {
			e.log.WarnContext(ctx, "Failed to open WhatsApp link, trying web fallback", "error", err)
			if err := e.host.OpenURL(ctx, web); err != nil {
				e.log.WarnContext(ctx, "Failed to open WhatsApp web link", "error", err)
			}
		}
	}

	if resolution.Status == StatusResolvedFuzzy {
		return Response{
			Text:    fmt.Sprintf("Did you mean '%s'? Sending message...", resolution.Name),
			Action:  ActionWhatsAppConfirm,
			Contact: &Contact{Name: resolution.Name, Phone: digits},
			Phone:   digits,
			Message: message,
		}
	}

	return Response{
		Text: fmt.Sprintf("Opening WhatsApp for %s...\nMessage: %q\nPlease press Enter in WhatsApp to send.",
			resolution.Name, message),
		Action:  ActionWhatsAppSent,
		Contact: &Contact{Name: resolution.Name, Phone: digits},
		Phone:   digits,
		Message: message,
	}
}
