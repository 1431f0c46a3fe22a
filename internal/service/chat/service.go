package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/helpbot/internal/core"
	"github.com/sandevgo/helpbot/pkg/log"
)

var ErrEmptyInput = errors.New("empty input")

const fallbackText = "Sorry — I couldn't reach the support service. Please try again in a moment."

// Service runs the request cycle: append the user's message, ask the agent,
// append the reply or a fallback. The UI keeps at most one request in flight.
type Service struct {
	store *Store
	agent core.SupportAgent
	now   func() time.Time
}

func NewService(store *Store, agent core.SupportAgent) *Service {
	return &Service{
		store: store,
		agent: agent,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Store() *Store {
	return s.store
}

// AppendUser validates and appends the user's message. It runs before any
// network activity so the message shows up immediately.
func (s *Service) AppendUser(ctx context.Context, conversationID, input string) (core.Message, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return core.Message{}, ErrEmptyInput
	}
	if _, ok := s.store.Get(conversationID); !ok {
		return core.Message{}, ErrConversationNotFound
	}

	msg := core.Message{
		ID:        uuid.NewString(),
		Role:      core.RoleUser,
		Content:   input,
		CreatedAt: s.now(),
	}
	if err := s.store.Append(ctx, conversationID, msg); err != nil {
		return core.Message{}, err
	}
	return msg, nil
}

// Request asks the agent and appends its answer. Every outcome, including a
// panic inside the client, ends with exactly one appended agent message, so
// the caller's typing indicator can always clear.
func (s *Service) Request(ctx context.Context, conversationID, question string) core.Message {
	logger := log.FromCtx(ctx)

	reply, err := s.askSafely(ctx, question)

	msg := core.Message{
		ID:        uuid.NewString(),
		Role:      core.RoleAgent,
		CreatedAt: s.now(),
	}
	if err != nil {
		logger.Error().Err(err).Msg("agent request failed")
		msg.Content = fallbackMessage(err)
	} else {
		msg.Content = reply.Answer
		msg.Confidence = reply.Confidence
		msg.Sources = reply.Sources
		msg.FollowUps = reply.FollowUps
	}

	if appendErr := s.store.Append(ctx, conversationID, msg); appendErr != nil {
		logger.Error().Err(appendErr).Msg("failed to persist agent message")
	}
	return msg
}

// Ask runs the full cycle in one call. The TUI splits it into AppendUser plus
// an async Request; export-style callers and tests use this form.
func (s *Service) Ask(ctx context.Context, conversationID, input string) (user, reply core.Message, err error) {
	user, err = s.AppendUser(ctx, conversationID, input)
	if err != nil {
		return core.Message{}, core.Message{}, err
	}
	return user, s.Request(ctx, conversationID, user.Content), nil
}

func (s *Service) askSafely(ctx context.Context, question string) (reply core.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("agent client panicked")
			log.FromCtx(ctx).Error().Interface("panic", r).Msg("recovered agent client panic")
		}
	}()
	return s.agent.Ask(ctx, question)
}

// fallbackMessage prefers the server-supplied error string when the failure
// was an explicit service payload.
func fallbackMessage(err error) string {
	var svcErr *core.ServiceError
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return fallbackText
}
