// Package snapshot serializes the full conversation list to a single JSON
// document. Timestamps are RFC3339 on the wire and revived to time.Time on
// decode, so an encode/decode round trip is value-equal.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/helpbot/internal/core"
)

const Version = 1

type Snapshot struct {
	Version       int                 `json:"version"`
	SavedAt       time.Time           `json:"saved_at"`
	Conversations []core.Conversation `json:"conversations"`
}

func Encode(convs []core.Conversation) ([]byte, error) {
	snap := Snapshot{
		Version:       Version,
		SavedAt:       time.Now().UTC(),
		Conversations: convs,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

func Decode(data []byte) ([]core.Conversation, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return snap.Conversations, nil
}
