package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"echo/internal/sysops"
)

// musicTracks is the fixed playlist, kept in a slice so the "track not
// found" listing is stable.
var musicTracks = []struct {
	Name string
	URL  string
}{
	{"stealth", "https://www.youtube.com/watch?v=U47Tr9BB_wE"},
	{"march", "https://www.youtube.com/watch?v=Xqeq4b5u_Xw"},
	{"skyfall", "https://www.youtube.com/watch?v=DeumyOzKqgI"},
	{"believer", "https://www.youtube.com/watch?v=7wtfhZwyrcc"},
	{"shape of you", "https://www.youtube.com/watch?v=JGwWNGJdvx8"},
	{"lecture", "https://www.youtube.com/watch?v=ZOhUXDe1Xr0&list=PL5Dqs90qDljVjbp18F1uw8cXgOobTOFGf"},
	{"faded", "https://www.youtube.com/watch?v=60ItHLz5sQw"},
}

var fallbackJokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"Why did the computer go to the doctor? Because it had a virus!",
	"Why don't robots ever panic? Because they have nerves of steel!",
}

var quotes = []string{
	"The only way to do great work is to love what you do. - Steve Jobs",
	"Believe you can and you're halfway there. - Theodore Roosevelt",
	"Success is not final, failure is not fatal: it is the courage to continue that counts. - Winston Churchill",
	"The future belongs to those who believe in the beauty of their dreams. - Eleanor Roosevelt",
	"It does not matter how slowly you go as long as you do not stop. - Confucius",
	"Everything you've ever wanted is on the other side of fear. - George Addair",
}

func (e *Engine) handleTime() Response {
	return Response{Text: fmt.Sprintf("The time is %s.", timeNow().Format("03:04 PM"))}
}

func (e *Engine) handleDate() Response {
	return Response{Text: fmt.Sprintf("Today's date is %s.", timeNow().Format("Monday, January 02, 2006"))}
}

func (e *Engine) handlePlayMusic(ctx context.Context, lower string) Response {
	track := strings.TrimSpace(strings.Replace(lower, "play", "", 1))
	for _, t := range musicTracks {
		if t.Name == track {
			e.openURL(ctx, t.URL)
			return Response{
				Text:   fmt.Sprintf("Opening %s on YouTube...", track),
				Action: ActionMusicPlayed,
			}
		}
	}

	names := make([]string, len(musicTracks))
	for i, t := range musicTracks {
		names[i] = t.Name
	}
	return Response{Text: "Track not found. Available tracks: " + strings.Join(names, ", ")}
}

func (e *Engine) handleOpenSite(ctx context.Context, url, text string) Response {
	e.openURL(ctx, url)
	return Response{Text: text, Action: ActionWebOpened}
}

func (e *Engine) handleNews(ctx context.Context) Response {
	e.openURL(ctx, "https://news.google.com")
	return Response{Text: "Opening Google News for latest articles.", Action: ActionWebOpened}
}

func (e *Engine) handleSearch(ctx context.Context, command string) Response {
	query := command
	for _, word := range []string{"wikipedia", "wiki", "search"} {
		query = strings.Replace(query, word, "", 1)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return Response{Text: "Please specify what you want to search for."}
	}

	e.openURL(ctx, "https://www.google.com/search?q="+strings.ReplaceAll(query, " ", "+"))
	return Response{Text: "Opening Google search for: " + query, Action: ActionWebOpened}
}

// openURL launches a URL on the host when an opener exists, logging failures
// instead of surfacing them: the spoken reply stays the same either way.
func (e *Engine) openURL(ctx context.Context, url string) {
	if e.host == nil || !e.host.CanOpenURL() {
		e.log.DebugContext(ctx, "No URL opener available", "url", url)
		return
	}
	if err := e.host.OpenURL(ctx, url); err != nil {
		e.log.WarnContext(ctx, "Failed to open URL", "url", url, "error", err)
	}
}

func (e *Engine) handleOpenCalculator(ctx context.Context) Response {
	if e.host == nil || !e.host.CanOpenCalculator() {
		return Response{Text: "Calculator not available on this system."}
	}
	if err := e.host.OpenCalculator(ctx); err != nil {
		e.log.WarnContext(ctx, "Failed to open calculator", "error", err)
		return Response{Text: "Error opening calculator."}
	}
	return Response{Text: "Calculator opened successfully"}
}

func (e *Engine) handleWeather(ctx context.Context) Response {
	if e.weather == nil {
		return Response{Text: "Weather service is not configured."}
	}

	report, err := e.weather.Current(ctx, e.city)
	if err != nil {
		e.log.WarnContext(ctx, "Weather lookup failed", "city", e.city, "error", err)
		return Response{Text: "Weather error: " + err.Error()}
	}

	return Response{Text: fmt.Sprintf(
		"Weather in %s: %s°C with %s. Humidity: %d%%, Pressure: %d hPa, Wind: %s m/s.",
		report.City,
		strconv.FormatFloat(report.Temperature, 'f', -1, 64),
		report.Description,
		report.Humidity,
		report.Pressure,
		strconv.FormatFloat(report.WindSpeed, 'f', -1, 64),
	)}
}

func (e *Engine) handleBattery(ctx context.Context) Response {
	if e.host == nil {
		return Response{Text: "Battery monitoring not available on this system."}
	}

	status, err := e.host.Battery(ctx)
	if err != nil {
		if errors.Is(err, sysops.ErrUnavailable) {
			return Response{Text: "Battery information not available."}
		}
		e.log.WarnContext(ctx, "Battery read failed", "error", err)
		return Response{Text: "Battery information not available."}
	}

	charging := "not charging"
	if status.Charging {
		charging = "charging"
	}
	return Response{Text: fmt.Sprintf("Battery: %.0f%% and %s.", status.Percent, charging)}
}

func (e *Engine) handleJoke() Response {
	return Response{Text: fallbackJokes[rand.IntN(len(fallbackJokes))]}
}

func (e *Engine) handleQuote() Response {
	return Response{Text: quotes[rand.IntN(len(quotes))]}
}

func (e *Engine) handleScreenshot(ctx context.Context) Response {
	if !e.caps.Screenshot || e.host == nil {
		return Response{Text: "Screenshot functionality not available."}
	}

	capture, err := e.host.Screenshot(ctx)
	if err != nil {
		e.log.WarnContext(ctx, "Screenshot failed", "error", err)
		return Response{Text: "Screenshot failed. Please try again."}
	}

	return Response{
		Text:     "Screenshot saved successfully",
		Action:   ActionScreenshotTaken,
		ImageURL: capture.URLPath,
		Filename: capture.Filename,
	}
}

func (e *Engine) handleTakePicture(ctx context.Context) Response {
	if !e.caps.Camera || e.host == nil {
		return Response{Text: "Camera functionality not available."}
	}

	capture, err := e.host.TakePicture(ctx)
	if err != nil {
		e.log.WarnContext(ctx, "Camera capture failed", "error", err)
		return Response{Text: "Camera capture failed. Please try again."}
	}

	return Response{
		Text:     "Picture captured successfully",
		Action:   ActionPictureTaken,
		ImageURL: capture.URLPath,
		Filename: capture.Filename,
	}
}

// handleListen captures one spoken command and executes it as if it had been
// typed. Without a recognizer the user is told to type instead.
func (e *Engine) handleListen(ctx context.Context) Response {
	if !e.caps.SpeechRecognition || e.listener == nil {
		return Response{Text: "Voice recognition not available. Please type your command."}
	}

	heard, err := e.listener.Listen(ctx)
	if err != nil || strings.TrimSpace(heard) == "" {
		if err != nil {
			e.log.WarnContext(ctx, "Voice capture failed", "error", err)
		}
		return Response{Text: "Didn't catch that. Please type your command."}
	}

	e.log.InfoContext(ctx, "Voice command captured", "command", heard)
	return e.Execute(ctx, heard)
}

func (e *Engine) handleSystemInfo(ctx context.Context) Response {
	if e.host == nil {
		return Response{Text: "System monitoring not available."}
	}

	info, err := e.host.Info(ctx)
	if err != nil {
		e.log.WarnContext(ctx, "System info read failed", "error", err)
		return Response{Text: "Error getting system info."}
	}

	return Response{Text: fmt.Sprintf(
		"System Information:\n"+
			"CPU: %.1f%% usage (%d cores)\n"+
			"RAM: %.1fGB / %.1fGB (%.1f%%)\n"+
			"Disk: %.1fGB / %.1fGB (%.1f%%)\n"+
			"OS: %s",
		info.CPUPercent, info.CPUCount,
		info.MemUsedGB, info.MemTotalGB, info.MemPercent,
		info.DiskUsedGB, info.DiskTotalGB, info.DiskPercent,
		info.Platform,
	)}
}

// imagePromptPrefixes are stripped when isolating the image description,
// longest first.
var imagePromptPrefixes = []string{
	"generate image of", "create image of", "draw me", "make image of",
	"generate picture of", "generate image", "create image", "draw", "make image",
}

func (e *Engine) handleGenerateImage(ctx context.Context, lower string) Response {
	prompt := lower
	for _, prefix := range imagePromptPrefixes {
		prompt = strings.ReplaceAll(prompt, prefix, "")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Response{Text: "Please provide a description for the image you want to generate."}
	}

	if e.images == nil {
		return Response{Text: "Image generation is not configured."}
	}

	result, err := e.images.Generate(ctx, prompt)
	if err != nil {
		e.log.WarnContext(ctx, "Image generation failed", "prompt", prompt, "error", err)
		return Response{Text: "Sorry, I couldn't generate the image. Please try again."}
	}

	return Response{
		Text:     fmt.Sprintf("Image generated successfully! Prompt: '%s'", prompt),
		Action:   ActionImageGenerated,
		ImageURL: result.URLPath,
		Filename: result.Filename,
	}
}

func (e *Engine) handleDefine(ctx context.Context, lower string) Response {
	word := lower
	for _, phrase := range []string{"what is the meaning of", "meaning of", "define"} {
		word = strings.ReplaceAll(word, phrase, "")
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return Response{Text: "Please specify a word to define."}
	}

	if e.dict == nil {
		return Response{Text: "Dictionary lookup is not available."}
	}

	def, err := e.dict.Define(ctx, word)
	if err != nil {
		e.log.DebugContext(ctx, "Definition lookup failed", "word", word, "error", err)
		return Response{Text: fmt.Sprintf("Could not find definition for '%s'.", word)}
	}

	capitalized := strings.ToUpper(word[:1]) + word[1:]
	return Response{Text: fmt.Sprintf("%s (%s): %s", capitalized, def.PartOfSpeech, def.Meaning)}
}

func (e *Engine) handleConvertCurrency(ctx context.Context, command string) Response {
	amount, from, to, ok := parseConversion(command)
	if !ok {
		return Response{Text: "Usage: convert <amount> <from_currency> to <to_currency>"}
	}

	fromCode := normalizeCurrency(from)
	toCode := normalizeCurrency(to)

	if e.rates == nil {
		return Response{Text: "Currency conversion service unavailable."}
	}

	table, err := e.rates.Latest(ctx, fromCode)
	if err != nil {
		e.log.WarnContext(ctx, "Exchange-rate lookup failed", "base", fromCode, "error", err)
		return Response{Text: "Currency conversion service unavailable."}
	}

	rate, found := table[toCode]
	if !found {
		return Response{Text: fmt.Sprintf("Currency %s not found.", toCode)}
	}

	return Response{Text: fmt.Sprintf("%s %s = %.2f %s",
		decimalAmount(amount), fromCode, amount*rate, toCode)}
}

func (e *Engine) handleConvertUnit(command string) Response {
	amount, from, to, ok := parseConversion(command)
	if !ok {
		return Response{Text: "Usage: convert <amount> <from_unit> to <to_unit>"}
	}
	return Response{Text: convertUnit(amount, from, to)}
}

func (e *Engine) handleHelp() Response {
	return Response{Text: "I can help you with:\n\n" +
		"CONVERSATIONAL AI:\n" +
		"- Ask me anything! I can answer questions, help with problems, and have natural conversations.\n" +
		"- Just chat naturally - I remember our conversation context.\n\n" +
		"AI IMAGE GENERATION:\n" +
		"- 'generate image of [description]'\n" +
		"- 'create image of a sunset over mountains'\n" +
		"- 'draw me a futuristic city'\n\n" +
		"SYSTEM COMMANDS:\n" +
		"Time & Date: 'time', 'date'\n" +
		"Music: 'play [song name]'\n" +
		"Web: 'open google/youtube/github/spotify/gmail'\n" +
		"Search: 'search [query]'\n" +
		"News: 'news', 'article', 'headlines'\n" +
		"Weather: 'weather'\n" +
		"Battery: 'battery status'\n" +
		"Capture: 'screenshot', 'take picture'\n" +
		"Calculate: 'calculate 2+2', 'what is 10*5'\n" +
		"Notes: 'note [text]', 'list notes'\n" +
		"Reminders: 'remind me to [task] in [n] minutes', 'list reminders'\n" +
		"Convert: 'convert 100 usd to inr'\n" +
		"Dictionary: 'define [word]'\n" +
		"System: 'system info'\n" +
		"Files: 'create file [name] with [content]'\n" +
		"Contacts: 'add contact [name] [phone]', 'list contacts'\n" +
		"WhatsApp: 'send whatsapp to [name] : [message]'\n" +
		"Jokes: 'tell me a joke'\n" +
		"Clear Chat: 'clear conversation'"}
}
