// Package engine routes assistant commands. A fixed keyword classifier
// separates system commands from conversation, an ordered predicate chain
// dispatches system commands to their handlers, and everything else falls
// back to the AI chat collaborator.
package engine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"echo/internal/ai"
	"echo/internal/config"
	"echo/internal/dictionary"
	"echo/internal/imagegen"
	"echo/internal/store"
	"echo/internal/sysops"
	"echo/internal/weather"
)

// timeNow is indirected for tests.
var timeNow = time.Now

// WeatherService reports current conditions for a city.
type WeatherService interface {
	Current(ctx context.Context, city string) (weather.Report, error)
}

// DictionaryService looks up word definitions.
type DictionaryService interface {
	Define(ctx context.Context, word string) (dictionary.Definition, error)
}

// RateSource provides exchange-rate tables keyed by target currency.
type RateSource interface {
	Latest(ctx context.Context, base string) (map[string]float64, error)
}

// ImageGenerator turns prompts into stored image files.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (imagegen.Result, error)
}

// HostOps performs side effects on the host machine.
type HostOps interface {
	CanOpenURL() bool
	OpenURL(ctx context.Context, url string) error
	CanOpenCalculator() bool
	OpenCalculator(ctx context.Context) error
	Screenshot(ctx context.Context) (sysops.Capture, error)
	TakePicture(ctx context.Context) (sysops.Capture, error)
	Battery(ctx context.Context) (sysops.BatteryStatus, error)
	Info(ctx context.Context) (sysops.SystemInfo, error)
}

// Speaker voices text out loud when TTS is available.
type Speaker interface {
	Available() bool
	Speak(ctx context.Context, text string) error
}

// Listener captures a spoken command when speech recognition is available.
type Listener interface {
	Available() bool
	Listen(ctx context.Context) (string, error)
}

// JobScheduler runs a function once at a point in time.
type JobScheduler interface {
	ScheduleAt(at time.Time, name string, fn func(context.Context)) error
}

// Deps carries the engine's collaborators. Store is required; every other
// field may be nil, in which case the matching handlers degrade to a
// "not available" reply.
type Deps struct {
	Store      store.Store
	AI         ai.Client
	Weather    WeatherService
	Dictionary DictionaryService
	Rates      RateSource
	Images     ImageGenerator
	Host       HostOps
	Speaker    Speaker
	Listener   Listener
	Scheduler  JobScheduler
}

// Engine executes assistant commands.
type Engine struct {
	store      store.Store
	ai         ai.Client
	weather    WeatherService
	dict       DictionaryService
	rates      RateSource
	images     ImageGenerator
	host       HostOps
	speaker    Speaker
	listener   Listener
	jobs       JobScheduler
	caps       Capabilities
	log        *slog.Logger

	city        string
	countryCode string
	filesDir    string
	notesLimit  int
	maxHistory  int
}

// New assembles an engine from its collaborators and configuration.
func New(deps Deps, caps Capabilities, cfg *config.Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		store:       deps.Store,
		ai:          deps.AI,
		weather:     deps.Weather,
		dict:        deps.Dictionary,
		rates:       deps.Rates,
		images:      deps.Images,
		host:        deps.Host,
		speaker:     deps.Speaker,
		listener:    deps.Listener,
		jobs:        deps.Scheduler,
		caps:        caps,
		log:         log.With("component", "engine"),
		city:        cfg.Weather.City,
		countryCode: cfg.Assistant.CountryCode,
		filesDir:    cfg.Assistant.FilesDir,
		notesLimit:  cfg.Assistant.NotesListLimit,
		maxHistory:  cfg.AI.MaxHistory,
	}
}

// Execute runs one command to completion. It never returns an error: every
// failure is rendered as response text so the caller always has something to
// show or speak.
func (e *Engine) Execute(ctx context.Context, command string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			e.log.ErrorContext(ctx, "Command handler panicked", "command", command, "panic", r)
			resp = Response{Text: "An error occurred while processing your command."}
		}
	}()

	command = strings.TrimSpace(command)
	if command == "" {
		return Response{Text: "Please provide a command."}
	}

	lower := strings.ToLower(command)
	e.log.DebugContext(ctx, "Processing command", "command", command)

	// Clearing history must work even when classification would route the
	// words elsewhere.
	if strings.Contains(lower, "clear conversation") || strings.Contains(lower, "reset chat") {
		return e.handleClearConversation(ctx)
	}

	if keyword, ok := Classify(command); ok {
		if resp, handled := e.dispatch(ctx, command, lower); handled {
			return resp
		}
		e.log.DebugContext(ctx, "No handler matched classified command, falling back to conversation",
			"command", command, "keyword", keyword)
	}

	return e.handleConversation(ctx, command)
}

// dispatch walks the ordered predicate chain. The boolean reports whether any
// handler claimed the command; unclaimed commands fall back to conversation.
func (e *Engine) dispatch(ctx context.Context, command, lower string) (Response, bool) {
	switch {
	case strings.Contains(lower, "remind me"):
		return e.handleSetReminder(ctx, command), true

	case strings.Contains(lower, "list reminders") || strings.Contains(lower, "show reminders"):
		return e.handleListReminders(ctx), true

	case strings.Contains(lower, "timer"):
		return e.handleSetTimer(ctx, command), true

	case containsAny(lower, "generate image", "create image", "draw me", "make image", "generate picture"):
		return e.handleGenerateImage(ctx, lower), true

	case containsAny(lower, "news", "article", "headlines"):
		return e.handleNews(ctx), true

	case containsAny(lower, "time", "clock"):
		return e.handleTime(), true

	case containsAny(lower, "date", "today") && !strings.Contains(lower, "update"):
		return e.handleDate(), true

	case strings.Contains(lower, "play"):
		return e.handlePlayMusic(ctx, lower), true

	case strings.Contains(lower, "open google"):
		return e.handleOpenSite(ctx, "https://www.google.co.in/", "Opening Google for you..."), true

	case strings.Contains(lower, "open youtube"):
		return e.handleOpenSite(ctx, "https://www.youtube.com/", "Opening YouTube..."), true

	case strings.Contains(lower, "open chatgpt"):
		return e.handleOpenSite(ctx, "https://chat.openai.com/", "Opening ChatGPT..."), true

	case strings.Contains(lower, "open whatsapp"):
		return e.handleOpenSite(ctx, "https://web.whatsapp.com/", "Opening WhatsApp Web..."), true

	case strings.Contains(lower, "open github"):
		return e.handleOpenSite(ctx, "https://github.com/", "Opening GitHub..."), true

	case strings.Contains(lower, "open spotify"):
		return e.handleOpenSite(ctx, "https://open.spotify.com/", "Opening Spotify..."), true

	case strings.Contains(lower, "open gmail"):
		return e.handleOpenSite(ctx, "https://mail.google.com/", "Opening Gmail..."), true

	case strings.Contains(lower, "open calculator"):
		return e.handleOpenCalculator(ctx), true

	case containsAny(lower, "calculate", "what is", "compute") && strings.ContainsAny(command, "0123456789+-*/."):
		return Response{Text: "The result is: " + Calculate(command)}, true

	case strings.Contains(lower, "search contact"):
		return e.handleSearchContact(ctx, command), true

	case strings.Contains(lower, "search"):
		return e.handleSearch(ctx, command), true

	case strings.Contains(lower, "weather"):
		return e.handleWeather(ctx), true

	case strings.Contains(lower, "battery"):
		return e.handleBattery(ctx), true

	case containsAny(lower, "joke", "funny", "humor"):
		return e.handleJoke(), true

	case containsAny(lower, "mood", "how am i", "how do i feel", "feeling"):
		return e.handleMoodCheckIn(), true

	case strings.Contains(lower, "screenshot"):
		return e.handleScreenshot(ctx), true

	case strings.Contains(lower, "picture") || strings.Contains(lower, "photo"):
		return e.handleTakePicture(ctx), true

	case strings.Contains(lower, "system info") || strings.Contains(lower, "system status"):
		return e.handleSystemInfo(ctx), true

	case strings.Contains(lower, "create file"):
		return e.handleCreateFile(command), true

	case strings.Contains(lower, "read file"):
		return e.handleReadFile(command), true

	case strings.HasPrefix(lower, "note "):
		return e.handleAddNote(ctx, command), true

	case containsAny(lower, "list notes", "show notes", "my notes"):
		return e.handleListNotes(ctx), true

	case strings.HasPrefix(lower, "add contact"):
		return e.handleAddContact(ctx, command), true

	case strings.Contains(lower, "list contacts"):
		return e.handleListContacts(ctx), true

	case strings.HasPrefix(lower, "remove contact"):
		return e.handleRemoveContact(ctx, command), true

	case containsAny(lower, "send whatsapp", "whatsapp send", "send message", "whatsapp message", "message on whatsapp"):
		return e.handleSendWhatsApp(ctx, command), true

	case strings.Contains(lower, "convert") &&
		containsAny(lower, "usd", "inr", "eur", "gbp", "dollar", "rupee", "euro", "pound"):
		return e.handleConvertCurrency(ctx, command), true

	case strings.Contains(lower, "convert") &&
		containsAny(lower, "km", "miles", "celsius", "fahrenheit", "feet", "meter"):
		return e.handleConvertUnit(command), true

	case containsAny(lower, "quote", "motivate me", "inspire me"):
		return e.handleQuote(), true

	case strings.Contains(lower, "define") || strings.Contains(lower, "meaning of"):
		return e.handleDefine(ctx, lower), true

	case strings.Contains(lower, "listen") || strings.Contains(lower, "voice command"):
		return e.handleListen(ctx), true

	case containsAny(lower, "exit", "quit", "goodbye", "bye"):
		return Response{Text: "Goodbye! ECHO signing off. Have a wonderful day!", Action: ActionExit}, true

	case strings.Contains(lower, "help"):
		return e.handleHelp(), true
	}

	return Response{}, false
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
