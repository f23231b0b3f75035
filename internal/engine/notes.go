package engine

import (
	"context"
	"fmt"
	"strings"
)

func (e *Engine) handleAddNote(ctx context.Context, command string) Response {
	text := strings.TrimSpace(command[len("note "):])
	if text == "" {
		return Response{Text: "Please provide note content."}
	}

	note, err := e.store.AppendNote(ctx, text)
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to save note", "error", err)
		return Response{Text: "Error adding note. Please try again."}
	}

	e.log.InfoContext(ctx, "Note added", "id", note.ID)
	return Response{Text: fmt.Sprintf("Note added: '%s'", text)}
}

func (e *Engine) handleListNotes(ctx context.Context) Response {
	notes, err := e.store.LoadNotes(ctx)
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to load notes", "error", err)
		return Response{Text: "Error listing notes. Please try again."}
	}
	if len(notes) == 0 {
		return Response{Text: "You have no notes yet."}
	}

	start := 0
	if e.notesLimit > 0 && len(notes) > e.notesLimit {
		start = len(notes) - e.notesLimit
	}

	var b strings.Builder
	b.WriteString("Your notes:\n")
	for _, note := range notes[start:] {
		fmt.Fprintf(&b, "%d. %s (%s)\n", note.ID, note.Text, note.Timestamp.Format("01/02 03:04 PM"))
	}
	return Response{Text: b.String()}
}
