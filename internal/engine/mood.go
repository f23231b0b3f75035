package engine

import "strings"

// moodWords are the feelings that trigger a canned supportive reply instead
// of the AI fallback.
var moodWords = []string{
	"happy", "sad", "angry", "excited", "tired", "good", "bad", "great", "awful",
}

// moodReplies maps groups of feeling words to their response. Groups are
// checked in order, so a message naming several feelings gets the first
// matching reply.
var moodReplies = []struct {
	words []string
	reply string
}{
	{
		words: []string{"happy", "good", "great", "fine", "awesome", "excellent", "wonderful"},
		reply: "That's wonderful to hear! Keep smiling! You're doing great and shining like a star today!",
	},
	{
		words: []string{"sad", "down", "unhappy", "depressed", "low"},
		reply: "I'm sorry to hear that. Remember, after every storm comes a rainbow. It's okay to have tough days, but they don't define you. Every challenge is an opportunity to grow stronger. Take a deep breath and know that brighter days are ahead. I'm here if you need someone to listen.",
	},
	{
		words: []string{"tired", "exhausted", "sleepy", "drained"},
		reply: "You should take some rest. A short break might help you recharge. You deserve it!",
	},
	{
		words: []string{"angry", "upset", "frustrated", "mad"},
		reply: "Try taking deep breaths and count to ten. It's okay to feel angry sometimes, but it's important to find healthy ways to express those feelings. Everything will be okay.",
	},
	{
		words: []string{"excited", "energetic", "enthusiastic", "pumped"},
		reply: "Awesome! Your energy is contagious! Keep that enthusiasm up!",
	},
}

func (e *Engine) handleMoodCheckIn() Response {
	return Response{Text: "How are you feeling today? You can tell me if you're happy, sad, excited, tired, or any other emotion you're experiencing."}
}

// moodReply returns the canned response for a message naming a feeling, or
// false when the message mentions no mood word at all.
func moodReply(lower string) (string, bool) {
	if !containsAny(lower, moodWords...) {
		return "", false
	}
	for _, group := range moodReplies {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return group.reply, true
			}
		}
	}
	return "Thanks for sharing how you feel. I'm here whenever you want to talk.", true
}
