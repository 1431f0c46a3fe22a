package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "empty input",
			input:    "",
			contains: []string{},
		},
		{
			name:     "plain text passes through",
			input:    "Refunds take 5 days.",
			contains: []string{"Refunds take 5 days."},
		},
		{
			name:     "bold markers stripped",
			input:    "**important** detail",
			contains: []string{"important detail"},
			excludes: []string{"**", "<strong>"},
		},
		{
			name:     "link keeps url",
			input:    "[refund policy](https://example.com/refunds)",
			contains: []string{"https://example.com/refunds"},
			excludes: []string{"<a "},
		},
		{
			name:     "list items kept",
			input:    "- first\n- second",
			contains: []string{"first", "second"},
			excludes: []string{"<li>"},
		},
		{
			name:     "script tags sanitized away",
			input:    "<script>alert('xss')</script>ok",
			contains: []string{"ok"},
			excludes: []string{"alert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToText([]byte(tt.input))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("MarkdownToText(%q) = %q, missing %q", tt.input, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("MarkdownToText(%q) = %q, should not contain %q", tt.input, got, bad)
				}
			}
		})
	}
}
