package core

import (
	"strings"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			limit:    40,
			expected: "",
		},
		{
			name:     "shorter than limit",
			input:    "How do I reset my password?",
			limit:    40,
			expected: "How do I reset my password?",
		},
		{
			name:     "exactly at limit",
			input:    strings.Repeat("a", 40),
			limit:    40,
			expected: strings.Repeat("a", 40),
		},
		{
			name:     "one over limit",
			input:    strings.Repeat("a", 41),
			limit:    40,
			expected: strings.Repeat("a", 40) + "…",
		},
		{
			name:     "multibyte runes counted as one",
			input:    strings.Repeat("é", 41),
			limit:    40,
			expected: strings.Repeat("é", 40) + "…",
		},
		{
			name:     "newlines flattened",
			input:    "first line\nsecond line",
			limit:    60,
			expected: "first line second line",
		},
		{
			name:     "whitespace runs collapsed",
			input:    "too   many    spaces",
			limit:    60,
			expected: "too many spaces",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.limit)
			if got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.expected)
			}
		})
	}
}

func TestConversation_FirstUserMessage(t *testing.T) {
	conv := Conversation{
		Messages: []Message{
			{Role: RoleAgent, Content: "Hi! How can I help?"},
			{Role: RoleUser, Content: "Pricing"},
			{Role: RoleUser, Content: "And refunds?"},
		},
	}

	msg, ok := conv.FirstUserMessage()
	if !ok {
		t.Fatal("expected a user message")
	}
	if msg.Content != "Pricing" {
		t.Errorf("expected first user message %q, got %q", "Pricing", msg.Content)
	}

	empty := Conversation{Messages: []Message{{Role: RoleAgent, Content: "welcome"}}}
	if _, ok := empty.FirstUserMessage(); ok {
		t.Error("expected no user message in agent-only conversation")
	}
}

func TestConversation_LastMessage(t *testing.T) {
	now := time.Now().UTC()
	conv := Conversation{
		Messages: []Message{
			{Role: RoleAgent, Content: "welcome", CreatedAt: now},
			{Role: RoleUser, Content: "latest", CreatedAt: now.Add(time.Second)},
		},
	}
	if got := conv.LastMessage().Content; got != "latest" {
		t.Errorf("expected last message %q, got %q", "latest", got)
	}
	if got := (Conversation{}).LastMessage(); got.Content != "" {
		t.Errorf("expected zero message for empty conversation, got %q", got.Content)
	}
}
