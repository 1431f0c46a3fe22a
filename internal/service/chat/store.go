package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/helpbot/internal/core"
	"github.com/sandevgo/helpbot/pkg/log"
)

var ErrConversationNotFound = errors.New("conversation not found")

const welcomeText = "Hi! I'm the HelpBot support assistant. Ask me anything about the product, or pick one of the suggestions below."

var welcomeFollowUps = []string{"Pricing", "Getting started", "Talk to a human"}

// Store keeps the full conversation list in memory and mirrors every mutation
// to the repository. Methods are safe for concurrent use: the UI event loop
// reads while agent replies are appended from command goroutines.
type Store struct {
	repo core.ConversationsRepository
	now  func() time.Time

	mu    sync.RWMutex
	convs []core.Conversation
}

func NewStore(repo core.ConversationsRepository) *Store {
	return &Store{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Load pulls persisted history once at startup. A load failure falls back to
// a fresh store; an empty store opens a welcome conversation so there is
// always something to type into.
func (s *Store) Load(ctx context.Context) error {
	convs, err := s.repo.LoadAll(ctx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to load conversation history, starting fresh")
		convs = nil
	}
	s.mu.Lock()
	s.convs = convs
	empty := len(convs) == 0
	s.mu.Unlock()

	if empty {
		if _, err := s.NewConversation(ctx); err != nil {
			return fmt.Errorf("failed to create welcome conversation: %w", err)
		}
	}
	return nil
}

// NewConversation opens a conversation seeded with one agent welcome message.
func (s *Store) NewConversation(ctx context.Context) (core.Conversation, error) {
	now := s.now()
	conv := core.Conversation{
		ID:        uuid.NewString(),
		Title:     "New conversation",
		UpdatedAt: now,
		Messages: []core.Message{{
			ID:        uuid.NewString(),
			Role:      core.RoleAgent,
			Content:   welcomeText,
			FollowUps: welcomeFollowUps,
			CreatedAt: now,
		}},
	}
	conv.Preview = core.Truncate(welcomeText, core.PreviewRuneLimit)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveConversation(ctx, conv); err != nil {
		return core.Conversation{}, err
	}
	if err := s.repo.SaveMessage(ctx, conv.ID, conv.Messages[0]); err != nil {
		return core.Conversation{}, err
	}

	s.convs = append([]core.Conversation{conv}, s.convs...)
	return conv, nil
}

// Append adds a message to a conversation, updating its preview, timestamp,
// and, for the first user message, its title.
func (s *Store) Append(ctx context.Context, conversationID string, msg core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(conversationID)
	if idx < 0 {
		return ErrConversationNotFound
	}

	conv := s.convs[idx]
	if _, hasUser := conv.FirstUserMessage(); !hasUser && msg.Role == core.RoleUser {
		conv.Title = core.Truncate(msg.Content, core.TitleRuneLimit)
	}
	conv.Messages = append(conv.Messages, msg)
	conv.Preview = core.Truncate(msg.Content, core.PreviewRuneLimit)
	conv.UpdatedAt = msg.CreatedAt

	// Persist first so a failed write cannot leave memory ahead of disk.
	if err := s.repo.SaveMessage(ctx, conversationID, msg); err != nil {
		return fmt.Errorf("failed to persist message: %w", err)
	}
	if err := s.repo.SaveConversation(ctx, conv); err != nil {
		return fmt.Errorf("failed to persist conversation: %w", err)
	}

	s.convs[idx] = conv
	return nil
}

// Get returns a copy of the conversation with the given ID.
func (s *Store) Get(conversationID string) (core.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(conversationID)
	if idx < 0 {
		return core.Conversation{}, false
	}
	return s.convs[idx], true
}

// List returns conversations whose title or preview contains the filter
// (case-insensitive), newest first. An empty filter returns everything.
func (s *Store) List(filter string) []core.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter = strings.ToLower(strings.TrimSpace(filter))

	out := make([]core.Conversation, 0, len(s.convs))
	for _, conv := range s.convs {
		if filter == "" ||
			strings.Contains(strings.ToLower(conv.Title), filter) ||
			strings.Contains(strings.ToLower(conv.Preview), filter) {
			out = append(out, conv)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// All returns every conversation, newest first.
func (s *Store) All() []core.Conversation {
	return s.List("")
}

func (s *Store) indexOf(conversationID string) int {
	for i := range s.convs {
		if s.convs[i].ID == conversationID {
			return i
		}
	}
	return -1
}
