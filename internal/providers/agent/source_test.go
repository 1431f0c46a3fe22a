package agent

import (
	"encoding/json"
	"testing"

	"github.com/sandevgo/helpbot/internal/core"
)

func TestSourceRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected core.Source
	}{
		{
			name:     "object form",
			input:    `{"title":"Docs","url":"https://example.com/docs"}`,
			expected: core.Source{Title: "Docs", URL: "https://example.com/docs"},
		},
		{
			name:     "object without url",
			input:    `{"title":"Internal KB article 42"}`,
			expected: core.Source{Title: "Internal KB article 42"},
		},
		{
			name:     "bare string without url",
			input:    `"Support handbook, chapter 3"`,
			expected: core.Source{Title: "Support handbook, chapter 3"},
		},
		{
			name:     "bare string with embedded url",
			input:    `"See https://example.com/faq for more."`,
			expected: core.Source{Title: "See https://example.com/faq for more.", URL: "https://example.com/faq"},
		},
		{
			name:     "bare url",
			input:    `"https://example.com/pricing"`,
			expected: core.Source{Title: "https://example.com/pricing", URL: "https://example.com/pricing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec sourceRecord
			if err := json.Unmarshal([]byte(tt.input), &rec); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if got := rec.toCore(); got != tt.expected {
				t.Errorf("toCore() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestExtractURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no url", "plain text", ""},
		{"trailing punctuation trimmed", "read https://example.com/a.", "https://example.com/a"},
		{"stops at whitespace", "https://example.com/a then more", "https://example.com/a"},
		{"http scheme", "http://example.com", "http://example.com"},
		{"closing paren", "(https://example.com/a)", "https://example.com/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractURL(tt.input); got != tt.expected {
				t.Errorf("extractURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
