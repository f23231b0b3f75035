package engine

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	addContactRegex    = regexp.MustCompile(`(?i)\badd contact\b`)
	trailingPhoneRegex = regexp.MustCompile(`(\+?\d{10,15})$`)
	removeContactRegex = regexp.MustCompile(`(?i)remove contact\s+(.+)`)
)

func (e *Engine) handleAddContact(ctx context.Context, command string) Response {
	clean := strings.TrimSpace(addContactRegex.ReplaceAllString(command, ""))

	var name, phone string
	if idx := strings.Index(clean, ":"); idx >= 0 {
		name = strings.TrimSpace(clean[:idx])
		phone = strings.TrimSpace(clean[idx+1:])
	} else if loc := trailingPhoneRegex.FindStringIndex(clean); loc != nil {
		phone = clean[loc[0]:loc[1]]
		name = strings.TrimSpace(clean[:loc[0]])
	} else {
		return Response{Text: "Usage: add contact <Name> <phone>\n" +
			"Example: add contact Mom " + e.countryCode + "9876543210"}
	}

	if name == "" {
		return Response{Text: "Usage: add contact <Name> <phone>\n" +
			"Example: add contact Mom " + e.countryCode + "9876543210"}
	}

	phone = nonPhoneChars.ReplaceAllString(phone, "")
	if !phoneShapeRegex.MatchString(phone) {
		return Response{Text: fmt.Sprintf("Invalid phone number. Format: %sXXXXXXXXXX (10-15 digits)", e.countryCode)}
	}
	if !strings.HasPrefix(phone, "+") {
		if len(phone) == 10 {
			phone = e.countryCode + phone
		} else {
			phone = "+" + phone
		}
	}

	contacts, err := e.store.LoadContacts(ctx)
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to load contacts", "error", err)
		return Response{Text: "Error adding contact. Please try again."}
	}

	if existing, exists := contacts[name]; exists {
		return Response{Text: fmt.Sprintf("Contact '%s' already exists with number %s.\n"+
			"Use 'remove contact %s' first to update.", name, existing, name)}
	}

	contacts[name] = phone
	if err := e.store.SaveContacts(ctx, contacts); err != nil {
		e.log.ErrorContext(ctx, "Failed to save contacts", "error", err)
		return Response{Text: "Error adding contact. Please try again."}
	}

	e.log.InfoContext(ctx, "Contact added", "name", name)
	return Response{
		Text:    fmt.Sprintf("Contact saved successfully: %s -> %s", name, phone),
		Action:  ActionContactAdded,
		Contact: &Contact{Name: name, Phone: phone},
	}
}

func (e *Engine) handleListContacts(ctx context.Context) Response {
	contacts, err := e.store.LoadContacts(ctx)
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to load contacts", "error", err)
		return Response{Text: "Error listing contacts. Please try again."}
	}
	if len(contacts) == 0 {
		return Response{Text: "No contacts saved yet."}
	}

	names := make([]string, 0, len(contacts))
	for name := range contacts {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Saved contacts:\n")
	for i, name := range names {
		fmt.Fprintf(&b, "%d. %s -> %s\n", i+1, name, contacts[name])
	}
	return Response{Text: b.String()}
}

func (e *Engine) handleRemoveContact(ctx context.Context, command string) Response {
	m := removeContactRegex.FindStringSubmatch(command)
	if m == nil {
		return Response{Text: "Usage: remove contact <Name>"}
	}
	name := strings.TrimSpace(m[1])

	contacts, err := e.store.LoadContacts(ctx)
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to load contacts", "error", err)
		return Response{Text: "Error removing contact. Please try again."}
	}

	phone, exists := contacts[name]
	if !exists {
		return Response{Text: fmt.Sprintf("Contact '%s' not found.", name)}
	}

	delete(contacts, name)
	if err := e.store.SaveContacts(ctx, contacts); err != nil {
		e.log.ErrorContext(ctx, "Failed to save contacts", "error", err)
		return Response{Text: "Error removing contact. Please try again."}
	}

	e.log.InfoContext(ctx, "Contact removed", "name", name)
	return Response{Text: fmt.Sprintf("Removed contact %s -> %s", name, phone)}
}

func (e *Engine) handleSearchContact(ctx context.Context, command string) Response {
	query := strings.TrimSpace(strings.Replace(strings.ToLower(command), "search contact", "", 1))
	if query == "" {
		return Response{Text: "Usage: search contact <name>"}
	}

	contacts, err := e.store.LoadContacts(ctx)
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to load contacts", "error", err)
		return Response{Text: "Error searching contacts. Please try again."}
	}

	matches := make(map[string]string)
	for name, phone := range contacts {
		if strings.Contains(strings.ToLower(name), query) {
			matches[name] = phone
		}
	}
	if len(matches) == 0 {
		return Response{Text: fmt.Sprintf("No contacts found matching '%s'.", query)}
	}

	names := make([]string, 0, len(matches))
	for name := range matches {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d contact(s):\n", len(matches))
	for _, name := range names {
		fmt.Fprintf(&b, "%s -> %s\n", name, matches[name])
	}
	return Response{Text: b.String(), Matches: matches}
}
