package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"echo/internal/config"
	"echo/internal/dictionary"
	"echo/internal/imagegen"
	"echo/internal/store"
	"echo/internal/sysops"
	"echo/internal/weather"
)

type fakeAI struct {
	reply      string
	err        error
	gotHistory int
	gotMessage string
}

func (f *fakeAI) GenerateReply(_ context.Context, history []store.ConversationEntry, message string) (string, error) {
	f.gotHistory = len(history)
	f.gotMessage = message
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeWeather struct {
	report weather.Report
	err    error
}

func (f *fakeWeather) Current(_ context.Context, city string) (weather.Report, error) {
	if f.err != nil {
		return weather.Report{}, f.err
	}
	r := f.report
	r.City = city
	return r, nil
}

type fakeDictionary struct {
	def dictionary.Definition
	err error
}

func (f *fakeDictionary) Define(_ context.Context, _ string) (dictionary.Definition, error) {
	return f.def, f.err
}

type fakeRates struct {
	table map[string]float64
	err   error
}

func (f *fakeRates) Latest(_ context.Context, _ string) (map[string]float64, error) {
	return f.table, f.err
}

type fakeImages struct {
	result imagegen.Result
	err    error
}

func (f *fakeImages) Generate(_ context.Context, _ string) (imagegen.Result, error) {
	return f.result, f.err
}

type fakeHost struct {
	openedURLs []string
	battery    sysops.BatteryStatus
	batteryErr error
	info       sysops.SystemInfo
	capture    sysops.Capture
	captureErr error
}

func (f *fakeHost) CanOpenURL() bool { return true }

func (f *fakeHost) OpenURL(_ context.Context, url string) error {
	f.openedURLs = append(f.openedURLs, url)
	return nil
}

func (f *fakeHost) CanOpenCalculator() bool                { return true }
func (f *fakeHost) OpenCalculator(_ context.Context) error { return nil }

func (f *fakeHost) Screenshot(_ context.Context) (sysops.Capture, error) {
	return f.capture, f.captureErr
}

func (f *fakeHost) TakePicture(_ context.Context) (sysops.Capture, error) {
	return f.capture, f.captureErr
}

func (f *fakeHost) Battery(_ context.Context) (sysops.BatteryStatus, error) {
	return f.battery, f.batteryErr
}

func (f *fakeHost) Info(_ context.Context) (sysops.SystemInfo, error) {
	return f.info, nil
}

type scheduledJob struct {
	at   time.Time
	name string
}

type fakeScheduler struct {
	jobs []scheduledJob
}

// ScheduleAt mirrors the real scheduler's contract of rejecting past starts.
func (f *fakeScheduler) ScheduleAt(at time.Time, name string, _ func(context.Context)) error {
	if at.Before(time.Now()) {
		return errors.New("start must not be in the past")
	}
	f.jobs = append(f.jobs, scheduledJob{at: at, name: name})
	return nil
}

type fakeListener struct {
	heard string
	err   error
}

func (f *fakeListener) Available() bool { return true }

func (f *fakeListener) Listen(_ context.Context) (string, error) {
	return f.heard, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AI:      config.AIConfig{MaxHistory: 10},
		Weather: config.WeatherConfig{City: "Kanpur"},
		Assistant: config.AssistantConfig{
			FilesDir:       t.TempDir(),
			CountryCode:    "+91",
			NotesListLimit: 5,
		},
	}
}

func newTestEngine(t *testing.T, deps Deps, caps Capabilities) *Engine {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if deps.Store == nil {
		st, err := store.NewStore(t.TempDir(), log)
		if err != nil {
			t.Fatalf("NewStore: %v", err)
		}
		deps.Store = st
	}
	return New(deps, caps, testConfig(t), log)
}

func TestExecuteEmptyCommand(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Deps{}, Capabilities{})
	resp := e.Execute(context.Background(), "   ")
	if resp.Text != "Please provide a command." {
		t.Errorf("empty command text = %q", resp.Text)
	}
}

func TestExecuteTimeAndDate(t *testing.T) {
	restore := timeNow
	timeNow = func() time.Time {
		return time.Date(2025, time.January, 2, 15, 4, 0, 0, time.UTC)
	}
	defer func() { timeNow = restore }()

	e := newTestEngine(t, Deps{}, Capabilities{})

	if got := e.Execute(context.Background(), "what time is it").Text; got != "The time is 03:04 PM." {
		t.Errorf("time text = %q", got)
	}
	if got := e.Execute(context.Background(), "date please").Text; got != "Today's date is Thursday, January 02, 2025." {
		t.Errorf("date text = %q", got)
	}
}

func TestExecuteConversions(t *testing.T) {
	t.Parallel()

	rates := &fakeRates{table: map[string]float64{"INR": 83}}
	e := newTestEngine(t, Deps{Rates: rates}, Capabilities{})
	ctx := context.Background()

	testCases := []struct {
		name    string
		command string
		want    string
	}{
		{
			name:    "distance",
			command: "convert 10 km to miles",
			want:    "10.0 km = 6.21 miles",
		},
		{
			name:    "temperature",
			command: "convert 0 celsius to fahrenheit",
			want:    "0 °C = 32.0 °F",
		},
		{
			name:    "currency",
			command: "convert 100 usd to inr",
			want:    "100.0 USD = 8300.00 INR",
		},
		{
			name:    "currency via spoken names",
			command: "convert 100 dollars to rupees",
			want:    "100.0 USD = 8300.00 INR",
		},
		{
			name:    "division by zero",
			command: "calculate 4/0",
			want:    "The result is: Error: Division by zero",
		},
		{
			name:    "simple calculation",
			command: "what is 6*7",
			want:    "The result is: 42",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.Execute(ctx, tc.command).Text; got != tc.want {
				t.Errorf("Execute(%q) = %q, want %q", tc.command, got, tc.want)
			}
		})
	}
}

func TestNoteFlow(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Deps{}, Capabilities{})
	ctx := context.Background()

	if got := e.Execute(ctx, "note Buy milk").Text; got != "Note added: 'Buy milk'" {
		t.Errorf("add note text = %q", got)
	}

	list := e.Execute(ctx, "list notes").Text
	if !strings.Contains(list, "1. Buy milk") {
		t.Errorf("list notes = %q, want it to contain %q", list, "1. Buy milk")
	}

	// Listing is read-only: a second listing must be identical.
	if again := e.Execute(ctx, "list notes").Text; again != list {
		t.Errorf("second listing differs: %q vs %q", again, list)
	}
}

func TestContactFlow(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Deps{}, Capabilities{})
	ctx := context.Background()

	resp := e.Execute(ctx, "add contact Mom +919876543210")
	if resp.Action != ActionContactAdded {
		t.Fatalf("add contact action = %q, text = %q", resp.Action, resp.Text)
	}
	if resp.Contact == nil || resp.Contact.Name != "Mom" || resp.Contact.Phone != "+919876543210" {
		t.Errorf("add contact contact = %+v", resp.Contact)
	}

	if got := e.Execute(ctx, "add contact Mom +919999999999").Text; !strings.Contains(got, "already exists") {
		t.Errorf("duplicate add text = %q", got)
	}

	if got := e.Execute(ctx, "add contact Dad 9876500000").Text; !strings.Contains(got, "+919876500000") {
		t.Errorf("bare number should gain country code, got %q", got)
	}

	if got := e.Execute(ctx, "add contact Sis : 123").Text; !strings.Contains(got, "Invalid phone number") {
		t.Errorf("short number text = %q", got)
	}

	list := e.Execute(ctx, "list contacts").Text
	if !strings.Contains(list, "Mom -> +919876543210") {
		t.Errorf("list contacts = %q", list)
	}

	search := e.Execute(ctx, "search contact mo")
	if _, found := search.Matches["Mom"]; !found {
		t.Errorf("search matches = %+v", search.Matches)
	}

	if got := e.Execute(ctx, "remove contact Mom").Text; got != "Removed contact Mom -> +919876543210" {
		t.Errorf("remove contact text = %q", got)
	}
	if got := e.Execute(ctx, "remove contact Mom").Text; got != "Contact 'Mom' not found." {
		t.Errorf("remove missing text = %q", got)
	}
}

func TestWhatsAppFlow(t *testing.T) {
	t.Parallel()

	host := &fakeHost{}
	e := newTestEngine(t, Deps{Host: host}, Capabilities{})
	ctx := context.Background()

	for _, cmd := range []string{
		"add contact Mom +919876543210",
		"add contact Mohammed +919876500001",
		"add contact Mohan +919876500002",
	} {
		if resp := e.Execute(ctx, cmd); resp.Action != ActionContactAdded {
			t.Fatalf("setup %q failed: %q", cmd, resp.Text)
		}
	}

	resp := e.Execute(ctx, "send whatsapp to Mom : Hello there")
	if resp.Action != ActionWhatsAppSent {
		t.Fatalf("send action = %q, text = %q", resp.Action, resp.Text)
	}
	if resp.Phone != "919876543210" || resp.Message != "Hello there" {
		t.Errorf("send phone/message = %q / %q", resp.Phone, resp.Message)
	}
	if len(host.openedURLs) == 0 || !strings.HasPrefix(host.openedURLs[0], "whatsapp://send?phone=919876543210") {
		t.Errorf("opened URLs = %v", host.openedURLs)
	}

	resp = e.Execute(ctx, "send whatsapp to Moh : hi")
	if !strings.Contains(resp.Text, "Multiple contacts found: Mohammed, Mohan") {
		t.Errorf("ambiguous text = %q", resp.Text)
	}

	resp = e.Execute(ctx, "send whatsapp to Moham : hi")
	if resp.Action != ActionWhatsAppConfirm {
		t.Errorf("fuzzy action = %q, text = %q", resp.Action, resp.Text)
	}
	if !strings.Contains(resp.Text, "Did you mean 'Mohammed'?") {
		t.Errorf("fuzzy text = %q", resp.Text)
	}

	resp = e.Execute(ctx, "send whatsapp to Zara : hi")
	if !strings.Contains(resp.Text, "Contact 'Zara' not found") {
		t.Errorf("not found text = %q", resp.Text)
	}

	resp = e.Execute(ctx, "send whatsapp to +919812345678 : see you")
	if resp.Action != ActionWhatsAppSent || resp.Phone != "919812345678" {
		t.Errorf("raw number send = %+v", resp)
	}
}

func TestConversationFallback(t *testing.T) {
	t.Parallel()

	aiClient := &fakeAI{reply: "**Hello!** I am here."}
	e := newTestEngine(t, Deps{AI: aiClient}, Capabilities{})
	ctx := context.Background()

	resp := e.Execute(ctx, "tell me about black holes")
	if resp.Action != ActionAIResponse {
		t.Fatalf("action = %q, text = %q", resp.Action, resp.Text)
	}
	if resp.Text != "Hello! I am here." {
		t.Errorf("reply not sanitized: %q", resp.Text)
	}
	if aiClient.gotMessage != "tell me about black holes" {
		t.Errorf("ai got message %q", aiClient.gotMessage)
	}

	history, err := e.store.LoadConversation(ctx)
	if err != nil {
		t.Fatalf("LoadConversation: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Role != store.RoleUser || history[1].Role != store.RoleAssistant {
		t.Errorf("history roles = %q, %q", history[0].Role, history[1].Role)
	}

	// A second exchange passes the prior turns as context.
	e.Execute(ctx, "and neutron stars?")
	if aiClient.gotHistory != 2 {
		t.Errorf("second call saw %d history entries, want 2", aiClient.gotHistory)
	}
}

func TestConversationWithoutAI(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Deps{}, Capabilities{})
	resp := e.Execute(context.Background(), "tell me about black holes")
	if resp.Action != ActionError {
		t.Errorf("action = %q", resp.Action)
	}
	if !strings.Contains(resp.Text, "not configured") {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestConversationErrorBecomesText(t *testing.T) {
	t.Parallel()

	aiClient := &fakeAI{err: errors.New("backend down")}
	e := newTestEngine(t, Deps{AI: aiClient}, Capabilities{})

	resp := e.Execute(context.Background(), "tell me something")
	if resp.Action != ActionError {
		t.Errorf("action = %q", resp.Action)
	}
	if resp.Text != "I encountered an error processing your message. Please try again." {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestClearConversation(t *testing.T) {
	t.Parallel()

	aiClient := &fakeAI{reply: "sure"}
	e := newTestEngine(t, Deps{AI: aiClient}, Capabilities{})
	ctx := context.Background()

	e.Execute(ctx, "remember this")
	resp := e.Execute(ctx, "clear conversation")
	if resp.Text != "Conversation history cleared. Starting fresh!" {
		t.Errorf("clear text = %q", resp.Text)
	}

	history, err := e.store.LoadConversation(ctx)
	if err != nil {
		t.Fatalf("LoadConversation: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history length after clear = %d", len(history))
	}
}

func TestClassifiedWithoutHandlerFallsBack(t *testing.T) {
	t.Parallel()

	aiClient := &fakeAI{reply: "happy to"}
	e := newTestEngine(t, Deps{AI: aiClient}, Capabilities{})

	// "message" classifies as a system keyword but no dispatch predicate
	// claims the command, so it must reach the conversational fallback.
	resp := e.Execute(context.Background(), "can you message me the summary")
	if resp.Action != ActionAIResponse {
		t.Errorf("action = %q, text = %q", resp.Action, resp.Text)
	}
}

func TestReminderFlow(t *testing.T) {
	jobs := &fakeScheduler{}
	e := newTestEngine(t, Deps{Scheduler: jobs}, Capabilities{})
	ctx := context.Background()

	base := time.Date(2030, time.June, 1, 12, 0, 0, 0, time.UTC)
	restore := timeNow
	timeNow = func() time.Time { return base }
	defer func() { timeNow = restore }()

	resp := e.Execute(ctx, "remind me to stretch in 5 minutes")
	if resp.Action != ActionReminderSet {
		t.Fatalf("reminder action = %q, text = %q", resp.Action, resp.Text)
	}
	if resp.Text != "Okay, I will remind you to stretch in 5 minutes." {
		t.Errorf("reminder text = %q", resp.Text)
	}
	if len(jobs.jobs) != 1 || !jobs.jobs[0].at.Equal(base.Add(5*time.Minute)) {
		t.Errorf("scheduled jobs = %+v", jobs.jobs)
	}

	if got := e.Execute(ctx, "set timer 30 seconds").Text; got != "Timer set for 30 seconds." {
		t.Errorf("timer text = %q", got)
	}

	list := e.Execute(ctx, "list reminders").Text
	if !strings.Contains(list, "stretch") || !strings.Contains(list, "Timer") {
		t.Errorf("list reminders = %q", list)
	}

	if got := e.Execute(ctx, "remind me to stretch").Text; !strings.Contains(got, "Usage: remind me to") {
		t.Errorf("malformed reminder text = %q", got)
	}
}

func TestRestorePendingReminders(t *testing.T) {
	t.Parallel()

	jobs := &fakeScheduler{}
	e := newTestEngine(t, Deps{Scheduler: jobs}, Capabilities{})
	ctx := context.Background()

	overdue, err := e.store.AppendReminder(ctx, store.Reminder{Text: "water plants", At: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("AppendReminder: %v", err)
	}
	upcoming, err := e.store.AppendReminder(ctx, store.Reminder{Text: "stretch", At: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("AppendReminder: %v", err)
	}
	if _, err := e.store.AppendReminder(ctx, store.Reminder{Text: "old news", At: time.Now().Add(-2 * time.Hour), Announced: true}); err != nil {
		t.Fatalf("AppendReminder: %v", err)
	}

	if err := e.RestorePendingReminders(ctx); err != nil {
		t.Fatalf("RestorePendingReminders: %v", err)
	}

	// Only the future reminder may reach the scheduler; a past start date
	// would be rejected and the reminder silently lost.
	wantName := fmt.Sprintf("reminder-%d", upcoming.ID)
	if len(jobs.jobs) != 1 || jobs.jobs[0].name != wantName {
		t.Fatalf("scheduled jobs = %+v, want one job named %q", jobs.jobs, wantName)
	}

	reminders, err := e.store.LoadReminders(ctx)
	if err != nil {
		t.Fatalf("LoadReminders: %v", err)
	}
	for _, r := range reminders {
		switch r.ID {
		case overdue.ID:
			if !r.Announced {
				t.Errorf("overdue reminder %d was not announced on restore", r.ID)
			}
		case upcoming.ID:
			if r.Announced {
				t.Errorf("future reminder %d must stay pending", r.ID)
			}
		}
	}
}

func TestCapabilityGatedHandlers(t *testing.T) {
	t.Parallel()

	host := &fakeHost{capture: sysops.Capture{Filename: "screenshot_x.png", URLPath: "/captures/screenshot_x.png"}}

	gated := newTestEngine(t, Deps{Host: host}, Capabilities{})
	if got := gated.Execute(context.Background(), "take a screenshot").Text; got != "Screenshot functionality not available." {
		t.Errorf("gated screenshot text = %q", got)
	}
	if got := gated.Execute(context.Background(), "take picture").Text; got != "Camera functionality not available." {
		t.Errorf("gated camera text = %q", got)
	}

	enabled := newTestEngine(t, Deps{Host: host}, Capabilities{Screenshot: true, Camera: true})
	resp := enabled.Execute(context.Background(), "take a screenshot")
	if resp.Action != ActionScreenshotTaken || resp.ImageURL != "/captures/screenshot_x.png" {
		t.Errorf("screenshot response = %+v", resp)
	}
}

func TestWebAndMusicHandlers(t *testing.T) {
	t.Parallel()

	host := &fakeHost{}
	e := newTestEngine(t, Deps{Host: host}, Capabilities{})
	ctx := context.Background()

	resp := e.Execute(ctx, "open google")
	if resp.Text != "Opening Google for you..." || resp.Action != ActionWebOpened {
		t.Errorf("open google response = %+v", resp)
	}

	resp = e.Execute(ctx, "play faded")
	if resp.Text != "Opening faded on YouTube..." || resp.Action != ActionMusicPlayed {
		t.Errorf("play response = %+v", resp)
	}

	resp = e.Execute(ctx, "play unknown song")
	if !strings.Contains(resp.Text, "Track not found. Available tracks:") {
		t.Errorf("unknown track text = %q", resp.Text)
	}

	resp = e.Execute(ctx, "search golang generics")
	if resp.Action != ActionWebOpened || !strings.Contains(resp.Text, "golang generics") {
		t.Errorf("search response = %+v", resp)
	}
	last := host.openedURLs[len(host.openedURLs)-1]
	if last != "https://www.google.com/search?q=golang+generics" {
		t.Errorf("search URL = %q", last)
	}
}

func TestWeatherHandler(t *testing.T) {
	t.Parallel()

	svc := &fakeWeather{report: weather.Report{
		Temperature: 25,
		Description: "clear sky",
		Humidity:    40,
		Pressure:    1012,
		WindSpeed:   3.5,
	}}
	e := newTestEngine(t, Deps{Weather: svc}, Capabilities{})

	got := e.Execute(context.Background(), "weather").Text
	want := "Weather in Kanpur: 25°C with clear sky. Humidity: 40%, Pressure: 1012 hPa, Wind: 3.5 m/s."
	if got != want {
		t.Errorf("weather text = %q, want %q", got, want)
	}

	unconfigured := newTestEngine(t, Deps{}, Capabilities{})
	if got := unconfigured.Execute(context.Background(), "weather").Text; got != "Weather service is not configured." {
		t.Errorf("unconfigured weather text = %q", got)
	}
}

func TestDefineHandler(t *testing.T) {
	t.Parallel()

	dict := &fakeDictionary{def: dictionary.Definition{
		Word:         "ephemeral",
		PartOfSpeech: "adjective",
		Meaning:      "lasting for a very short time",
	}}
	e := newTestEngine(t, Deps{Dictionary: dict}, Capabilities{})

	got := e.Execute(context.Background(), "define ephemeral").Text
	want := "Ephemeral (adjective): lasting for a very short time"
	if got != want {
		t.Errorf("define text = %q, want %q", got, want)
	}

	missing := &fakeDictionary{err: errors.New("no definition")}
	e = newTestEngine(t, Deps{Dictionary: missing}, Capabilities{})
	if got := e.Execute(context.Background(), "define zzzz").Text; got != "Could not find definition for 'zzzz'." {
		t.Errorf("missing define text = %q", got)
	}
}

func TestFileHandlers(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Deps{}, Capabilities{})
	ctx := context.Background()

	resp := e.Execute(ctx, "create file notes.txt with hello world")
	if !strings.Contains(resp.Text, "File created successfully") {
		t.Fatalf("create file text = %q", resp.Text)
	}

	resp = e.Execute(ctx, "read file notes.txt")
	if !strings.Contains(resp.Text, "hello world") {
		t.Errorf("read file text = %q", resp.Text)
	}

	if got := e.Execute(ctx, "read file missing.txt").Text; got != "File not found: missing.txt" {
		t.Errorf("missing file text = %q", got)
	}

	if got := e.Execute(ctx, "create file ../evil.txt with data").Text; got != "Invalid file name." {
		t.Errorf("traversal text = %q", got)
	}
}

func TestExitAndHelp(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Deps{}, Capabilities{})

	resp := e.Execute(context.Background(), "goodbye")
	if resp.Action != ActionExit || !strings.Contains(resp.Text, "signing off") {
		t.Errorf("exit response = %+v", resp)
	}

	help := e.Execute(context.Background(), "help").Text
	for _, fragment := range []string{"SYSTEM COMMANDS", "generate image", "clear conversation"} {
		if !strings.Contains(help, fragment) {
			t.Errorf("help text missing %q", fragment)
		}
	}
}

func TestQuoteHandler(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Deps{}, Capabilities{})
	ctx := context.Background()

	for _, cmd := range []string{"quote", "motivate me please", "inspire me"} {
		resp := e.Execute(ctx, cmd)
		if resp.Action == ActionError {
			t.Fatalf("Execute(%q) errored: %q", cmd, resp.Text)
		}
		// Every quote in the list carries an attribution.
		if !strings.Contains(resp.Text, " - ") {
			t.Errorf("Execute(%q) = %q, want a quote with attribution", cmd, resp.Text)
		}
	}
}

func TestMoodHandling(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Deps{}, Capabilities{})
	ctx := context.Background()

	for _, cmd := range []string{"check my mood", "how do i feel"} {
		got := e.Execute(ctx, cmd).Text
		if !strings.Contains(got, "How are you feeling today?") {
			t.Errorf("Execute(%q) = %q, want the mood check-in prompt", cmd, got)
		}
	}

	testCases := []struct {
		name    string
		command string
		want    string
	}{
		{
			name:    "happy",
			command: "i had a great day",
			want:    "Keep smiling",
		},
		{
			name:    "sad",
			command: "i am sad today",
			want:    "after every storm comes a rainbow",
		},
		{
			name:    "tired",
			command: "so tired right now",
			want:    "take some rest",
		},
		{
			name:    "unmatched mood word",
			command: "i feel awful",
			want:    "Thanks for sharing how you feel",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Execute(ctx, tc.command).Text
			if !strings.Contains(got, tc.want) {
				t.Errorf("Execute(%q) = %q, want it to contain %q", tc.command, got, tc.want)
			}
		})
	}

	// Mood words must not shadow the exit command.
	if resp := e.Execute(ctx, "goodbye"); resp.Action != ActionExit {
		t.Errorf("goodbye action = %q, text = %q", resp.Action, resp.Text)
	}
}

func TestListenCommand(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	unavailable := newTestEngine(t, Deps{}, Capabilities{})
	if got := unavailable.Execute(ctx, "listen").Text; got != "Voice recognition not available. Please type your command." {
		t.Errorf("unavailable listen text = %q", got)
	}

	heard := newTestEngine(t, Deps{Listener: &fakeListener{heard: "what is 6*7"}}, Capabilities{SpeechRecognition: true})
	if got := heard.Execute(ctx, "listen").Text; got != "The result is: 42" {
		t.Errorf("captured command text = %q", got)
	}

	silent := newTestEngine(t, Deps{Listener: &fakeListener{}}, Capabilities{SpeechRecognition: true})
	if got := silent.Execute(ctx, "listen").Text; got != "Didn't catch that. Please type your command." {
		t.Errorf("empty capture text = %q", got)
	}
}

func TestGreetingShortcut(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Deps{}, Capabilities{})
	got := e.Execute(context.Background(), "hello").Text
	if !strings.Contains(got, "ECHO") {
		t.Errorf("greeting text = %q", got)
	}
}
