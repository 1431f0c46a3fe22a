package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	HelpBotName          = "HelpBot"
	HelpBotUserAgent     = "HelpBot-Client/0.1"
	HelpBotRepositoryURL = "https://github.com/sandevgo/helpbot"
	HelpBotVersion       = "0.1.0"
)

const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

const (
	// TitleRuneLimit caps conversation titles derived from the first user message.
	TitleRuneLimit = 40
	// PreviewRuneLimit caps the sidebar preview derived from the last message.
	PreviewRuneLimit = 60
	// InputRuneLimit caps the composer input.
	InputRuneLimit = 500
)

// Source is one citation attached to an agent answer. URL is empty when the
// service returned a bare label.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// Message is a single transcript entry. Messages are immutable once created;
// conversations only ever append.
type Message struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Confidence *float64  `json:"confidence,omitempty"`
	Sources    []Source  `json:"sources,omitempty"`
	FollowUps  []string  `json:"followup_questions,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Conversation is an append-only, chronological message thread. Title and
// Preview are derived fields kept current by the store on every append.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Preview   string    `json:"preview"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// LastMessage returns the newest message, or a zero Message for an empty thread.
func (c Conversation) LastMessage() Message {
	if len(c.Messages) == 0 {
		return Message{}
	}
	return c.Messages[len(c.Messages)-1]
}

// FirstUserMessage returns the earliest user-authored message, if any.
func (c Conversation) FirstUserMessage() (Message, bool) {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return m, true
		}
	}
	return Message{}, false
}

// Truncate shortens s to at most limit runes, appending an ellipsis when
// anything was cut. Whitespace runs are flattened so derived titles and
// previews stay single-line.
func Truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "…"
}
