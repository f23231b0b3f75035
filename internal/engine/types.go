package engine

// Response is the result of executing one command. Text is always set; the
// remaining fields are populated only by handlers that have something extra
// to report, so the JSON shape stays minimal for simple replies.
type Response struct {
	Text     string            `json:"text"`
	Action   string            `json:"action,omitempty"`
	ImageURL string            `json:"image_url,omitempty"`
	Filename string            `json:"filename,omitempty"`
	Contact  *Contact          `json:"contact,omitempty"`
	Phone    string            `json:"phone,omitempty"`
	Message  string            `json:"message,omitempty"`
	Matches  map[string]string `json:"matches,omitempty"`
}

// Contact identifies a saved contact in a Response.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Action values attached to responses whose effect goes beyond text.
const (
	ActionAIResponse      = "ai_response"
	ActionError           = "error"
	ActionExit            = "exit"
	ActionWebOpened       = "web_opened"
	ActionMusicPlayed     = "music_played"
	ActionImageGenerated  = "image_generated"
	ActionScreenshotTaken = "screenshot_taken"
	ActionPictureTaken    = "picture_taken"
	ActionContactAdded    = "contact_added"
	ActionWhatsAppSent    = "whatsapp_sent"
	ActionWhatsAppConfirm = "whatsapp_confirm"
	ActionReminderSet     = "reminder_set"
)

// Capabilities reports which optional host features were detected at startup.
// Handlers consult these flags instead of probing the host themselves.
type Capabilities struct {
	TTS               bool
	SpeechRecognition bool
	Screenshot        bool
	Camera            bool
}
