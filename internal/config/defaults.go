package config

import "time"

// Default values for optional configuration parameters.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultServerAddr            = ":8080"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 60 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second

	DefaultStoreDir = "data"

	DefaultAIBackend     = "openai"
	DefaultAIBaseURL     = "https://api.groq.com/openai/v1"
	DefaultAIModel       = "llama-3.3-70b-versatile"
	DefaultAITemperature = 0.7
	DefaultAIMaxTokens   = 500
	DefaultAITimeout     = 30 * time.Second
	DefaultAIMaxHistory  = 10

	DefaultFilesDirName   = "ECHO_Files"
	DefaultCapturesDir    = "captures"
	DefaultCountryCode    = "+91"
	DefaultNotesListLimit = 5

	DefaultWeatherCity    = "Kanpur"
	DefaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultWeatherTimeout = 10 * time.Second

	DefaultRatesBaseURL  = "https://api.exchangerate-api.com/v4/latest"
	DefaultRatesTimeout  = 10 * time.Second
	DefaultRatesCacheTTL = 30 * time.Minute

	DefaultImageGenBaseURL = "https://image.pollinations.ai"
	DefaultImageGenWidth   = 1024
	DefaultImageGenHeight  = 1024
	DefaultImageGenTimeout = 30 * time.Second
)

// DefaultAIInstruction is the fixed system instruction for the conversational
// fallback. Replies must stay short and free of markup so they read naturally
// when spoken aloud.
const DefaultAIInstruction = `You are ECHO, a friendly voice assistant.

CRITICAL RULES:
1. Keep responses SHORT - maximum 3-4 sentences for simple questions
2. NO markdown, asterisks, or special formatting
3. NO bullet points or numbered lists - use natural speech
4. Sound natural when read aloud
5. Be direct and conversational
6. For complex topics, be concise but informative`
