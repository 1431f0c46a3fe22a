package snapshot

import (
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/helpbot/internal/core"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()
	confidence := 0.72
	at := time.Date(2026, 3, 14, 9, 30, 0, 123456789, time.UTC)

	convs := []core.Conversation{{
		ID:        "conv-1",
		Title:     "Billing question",
		Preview:   "Invoices are sent monthly.",
		UpdatedAt: at.Add(time.Minute),
		Messages: []core.Message{
			{ID: "m1", Role: core.RoleUser, Content: "When do I get invoiced?", CreatedAt: at},
			{
				ID:         "m2",
				Role:       core.RoleAgent,
				Content:    "Invoices are sent monthly.",
				Confidence: &confidence,
				Sources:    []core.Source{{Title: "Billing FAQ", URL: "https://example.com/billing"}},
				FollowUps:  []string{"Can I change the billing date?"},
				CreatedAt:  at.Add(time.Minute),
			},
		},
	}}

	data, err := Encode(convs)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Timestamps go over the wire in RFC3339 form.
	if !strings.Contains(string(data), "2026-03-14T09:30:00.123456789Z") {
		t.Errorf("snapshot does not carry RFC3339 timestamps:\n%s", data)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(decoded))
	}

	got, want := decoded[0], convs[0]
	if got.ID != want.ID || got.Title != want.Title || got.Preview != want.Preview {
		t.Errorf("conversation metadata changed: got %+v", got)
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, want.UpdatedAt)
	}
	if len(got.Messages) != len(want.Messages) {
		t.Fatalf("expected %d messages, got %d", len(want.Messages), len(got.Messages))
	}
	for i := range want.Messages {
		w, g := want.Messages[i], got.Messages[i]
		if g.ID != w.ID || g.Role != w.Role || g.Content != w.Content {
			t.Errorf("message %d changed: got %+v", i, g)
		}
		if !g.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("message %d created_at = %v, want %v", i, g.CreatedAt, w.CreatedAt)
		}
	}
	if decoded[0].Messages[1].Confidence == nil || *decoded[0].Messages[1].Confidence != confidence {
		t.Error("confidence did not survive the round trip")
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "not json at all"},
		{"wrong version", `{"version":99,"conversations":[]}`},
		{"truncated", `{"version":1,"conversations":[{"id":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.input)); err == nil {
				t.Errorf("Decode(%q) should fail", tt.input)
			}
		})
	}
}
