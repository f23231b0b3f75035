// Package store persists the assistant's shared state as standalone JSON
// documents on the local filesystem: conversation history, notes, contacts,
// and reminders. Each operation loads the backing file, mutates the decoded
// collection, and writes the whole document back; there is no incremental
// update and no cross-process locking. A corrupt or unreadable file is
// treated as an empty collection rather than failing the request.
//
// The single-request-at-a-time assumption makes this safe for a local
// assistant. Serving concurrent callers would require either a serializing
// queue per collection or a read-modify-write version check before this
// store can be shared.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// now is indirected for tests.
var now = func() time.Time { return time.Now() }

// File names of the persisted collections inside the store directory.
const (
	conversationFile = "conversation_history.json"
	notesFile        = "echo_notes.json"
	contactsFile     = "echo_contacts.json"
	remindersFile    = "echo_reminders.json"
)

// Store defines the persistence operations shared by the command handlers.
type Store interface {
	LoadConversation(ctx context.Context) ([]ConversationEntry, error)
	AppendConversation(ctx context.Context, entries ...ConversationEntry) error
	ClearConversation(ctx context.Context) error

	LoadNotes(ctx context.Context) ([]Note, error)
	AppendNote(ctx context.Context, text string) (Note, error)

	LoadContacts(ctx context.Context) (map[string]string, error)
	SaveContacts(ctx context.Context, contacts map[string]string) error

	LoadReminders(ctx context.Context) ([]Reminder, error)
	AppendReminder(ctx context.Context, r Reminder) (Reminder, error)
	MarkReminderAnnounced(ctx context.Context, id int) error
}

// fileStore implements Store on top of per-collection JSON files.
type fileStore struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &fileStore{
		dir:    dir,
		logger: logger.With("component", "store"),
	}, nil
}

// load decodes the named collection file into dest. A missing or corrupt
// file leaves dest untouched (the caller's zero value stands for "empty").
func (s *fileStore) load(ctx context.Context, name string, dest any) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		s.logger.WarnContext(ctx, "Failed to read collection, treating as empty", "file", name, "error", err)
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.WarnContext(ctx, "Corrupt collection file, treating as empty", "file", name, "error", err)
		return nil
	}
	return nil
}

// save writes the collection atomically: marshal, write to a temp file in the
// same directory, then rename over the target.
func (s *fileStore) save(ctx context.Context, name string, v any) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	s.logger.DebugContext(ctx, "Collection saved", "file", name, "bytes", len(data))
	return nil
}

func (s *fileStore) LoadConversation(ctx context.Context) ([]ConversationEntry, error) {
	var entries []ConversationEntry
	if err := s.load(ctx, conversationFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *fileStore) AppendConversation(ctx context.Context, entries ...ConversationEntry) error {
	existing, err := s.LoadConversation(ctx)
	if err != nil {
		return err
	}
	existing = append(existing, entries...)
	return s.save(ctx, conversationFile, existing)
}

// ClearConversation removes the history file entirely so a subsequent
// fallback call starts with zero prior context.
func (s *fileStore) ClearConversation(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	path := filepath.Join(s.dir, conversationFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear conversation history: %w", err)
	}
	s.logger.InfoContext(ctx, "Conversation history cleared")
	return nil
}

func (s *fileStore) LoadNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := s.load(ctx, notesFile, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *fileStore) AppendNote(ctx context.Context, text string) (Note, error) {
	notes, err := s.LoadNotes(ctx)
	if err != nil {
		return Note{}, err
	}

	note := Note{
		ID:        len(notes) + 1,
		Text:      text,
		Timestamp: now(),
	}
	notes = append(notes, note)

	if err := s.save(ctx, notesFile, notes); err != nil {
		return Note{}, err
	}
	return note, nil
}

func (s *fileStore) LoadContacts(ctx context.Context) (map[string]string, error) {
	contacts := make(map[string]string)
	if err := s.load(ctx, contactsFile, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *fileStore) SaveContacts(ctx context.Context, contacts map[string]string) error {
	return s.save(ctx, contactsFile, contacts)
}

func (s *fileStore) LoadReminders(ctx context.Context) ([]Reminder, error) {
	var reminders []Reminder
	if err := s.load(ctx, remindersFile, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (s *fileStore) AppendReminder(ctx context.Context, r Reminder) (Reminder, error) {
	reminders, err := s.LoadReminders(ctx)
	if err != nil {
		return Reminder{}, err
	}

	r.ID = len(reminders) + 1
	reminders = append(reminders, r)

	if err := s.save(ctx, remindersFile, reminders); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (s *fileStore) MarkReminderAnnounced(ctx context.Context, id int) error {
	reminders, err := s.LoadReminders(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range reminders {
		if reminders[i].ID == id {
			reminders[i].Announced = true
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("reminder %d not found", id)
	}
	return s.save(ctx, remindersFile, reminders)
}
