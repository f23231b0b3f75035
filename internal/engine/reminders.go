package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"echo/internal/store"
)

var (
	remindRegex = regexp.MustCompile(`(?i)remind me to\s+(.+?)\s+in\s+(\d+)\s*(seconds?|minutes?|hours?)\b`)
	timerRegex  = regexp.MustCompile(`(?i)(?:set\s+)?timer(?:\s+for)?\s+(\d+)\s*(seconds?|minutes?|hours?)\b`)
)

func reminderDuration(n int, unit string) time.Duration {
	switch {
	case strings.HasPrefix(unit, "second"):
		return time.Duration(n) * time.Second
	case strings.HasPrefix(unit, "minute"):
		return time.Duration(n) * time.Minute
	default:
		return time.Duration(n) * time.Hour
	}
}

func (e *Engine) handleSetReminder(ctx context.Context, command string) Response {
	m := remindRegex.FindStringSubmatch(command)
	if m == nil {
		return Response{Text: "Usage: remind me to <task> in <number> <seconds|minutes|hours>"}
	}

	task := strings.TrimSpace(m[1])
	n, err := strconv.Atoi(m[2])
	if err != nil || n <= 0 {
		return Response{Text: "Usage: remind me to <task> in <number> <seconds|minutes|hours>"}
	}
	unit := strings.ToLower(m[3])

	if resp, ok := e.scheduleReminder(ctx, task, reminderDuration(n, unit)); !ok {
		return resp
	}
	return Response{
		Text:   fmt.Sprintf("Okay, I will remind you to %s in %d %s.", task, n, unit),
		Action: ActionReminderSet,
	}
}

func (e *Engine) handleSetTimer(ctx context.Context, command string) Response {
	m := timerRegex.FindStringSubmatch(command)
	if m == nil {
		return Response{Text: "Usage: set timer <number> <seconds|minutes|hours>"}
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return Response{Text: "Usage: set timer <number> <seconds|minutes|hours>"}
	}
	unit := strings.ToLower(m[2])

	if resp, ok := e.scheduleReminder(ctx, "Timer", reminderDuration(n, unit)); !ok {
		return resp
	}
	return Response{
		Text:   fmt.Sprintf("Timer set for %d %s.", n, unit),
		Action: ActionReminderSet,
	}
}

// scheduleReminder persists a reminder and registers its one-shot job. The
// returned Response is only meaningful when ok is false.
func (e *Engine) scheduleReminder(ctx context.Context, text string, in time.Duration) (Response, bool) {
	at := timeNow().Add(in)

	reminder, err := e.store.AppendReminder(ctx, store.Reminder{Text: text, At: at})
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to save reminder", "error", err)
		return Response{Text: "Error setting reminder. Please try again."}, false
	}

	if e.jobs != nil {
		name := fmt.Sprintf("reminder-%d", reminder.ID)
		if err := e.jobs.ScheduleAt(at, name, func(jobCtx context.Context) {
			e.announceReminder(jobCtx, reminder)
		}); err != nil {
			e.log.ErrorContext(ctx, "Failed to schedule reminder job", "id", reminder.ID, "error", err)
		}
	}

	return Response{}, true
}

// announceReminder fires when a reminder comes due: it is always logged,
// spoken when TTS is available, and marked announced in the store.
func (e *Engine) announceReminder(ctx context.Context, reminder store.Reminder) {
	text := "Reminder: " + reminder.Text
	e.log.InfoContext(ctx, "Reminder due", "id", reminder.ID, "text", reminder.Text)

	if e.speaker != nil && e.speaker.Available() {
		if err := e.speaker.Speak(ctx, text); err != nil {
			e.log.WarnContext(ctx, "Failed to speak reminder", "id", reminder.ID, "error", err)
		}
	}

	if err := e.store.MarkReminderAnnounced(ctx, reminder.ID); err != nil {
		e.log.WarnContext(ctx, "Failed to mark reminder announced", "id", reminder.ID, "error", err)
	}
}

// RestorePendingReminders recovers reminders that were still pending when the
// process last stopped. Reminders that came due while the process was down
// are announced immediately; future ones are rescheduled. The scheduler
// rejects start times in the past, so overdue reminders must not reach it.
func (e *Engine) RestorePendingReminders(ctx context.Context) error {
	if e.jobs == nil {
		return nil
	}

	reminders, err := e.store.LoadReminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}

	restored := 0
	for _, reminder := range reminders {
		if reminder.Announced {
			continue
		}
		if !reminder.At.After(timeNow()) {
			e.announceReminder(ctx, reminder)
			continue
		}
		name := fmt.Sprintf("reminder-%d", reminder.ID)
		if err := e.jobs.ScheduleAt(reminder.At, name, func(jobCtx context.Context) {
			e.announceReminder(jobCtx, reminder)
		}); err != nil {
			e.log.WarnContext(ctx, "Failed to restore reminder", "id", reminder.ID, "error", err)
			continue
		}
		restored++
	}
	if restored > 0 {
		e.log.InfoContext(ctx, "Restored pending reminders", "count", restored)
	}
	return nil
}

func (e *Engine) handleListReminders(ctx context.Context) Response {
	reminders, err := e.store.LoadReminders(ctx)
	if err != nil {
		e.log.ErrorContext(ctx, "Failed to load reminders", "error", err)
		return Response{Text: "Error listing reminders. Please try again."}
	}

	var pending []store.Reminder
	for _, r := range reminders {
		if !r.Announced {
			pending = append(pending, r)
		}
	}
	if len(pending) == 0 {
		return Response{Text: "You have no pending reminders."}
	}

	var b strings.Builder
	b.WriteString("Your reminders:\n")
	for i, r := range pending {
		fmt.Fprintf(&b, "%d. %s at %s\n", i+1, r.Text, r.At.Format("01/02 03:04 PM"))
	}
	return Response{Text: b.String()}
}
