package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/helpbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAgent lets each test script the answering service.
type fakeAgent struct {
	reply  core.Reply
	err    error
	panics bool

	calls  int
	onCall func()
}

func (f *fakeAgent) Ask(ctx context.Context, question string) (core.Reply, error) {
	f.calls++
	if f.onCall != nil {
		f.onCall()
	}
	if f.panics {
		panic("boom")
	}
	return f.reply, f.err
}

func newTestService(t *testing.T, ag *fakeAgent) (*Service, core.Conversation) {
	t.Helper()
	store, _ := newTestStore(t)
	return NewService(store, ag), store.All()[0]
}

func floatPtr(f float64) *float64 { return &f }

func TestService_Ask_Success(t *testing.T) {
	t.Parallel()
	ag := &fakeAgent{reply: core.Reply{
		Answer:     "Our starter plan is free.",
		Confidence: floatPtr(0.93),
		Sources:    []core.Source{{Title: "Pricing page", URL: "https://example.com/pricing"}},
		FollowUps:  []string{"What does the pro plan cost?"},
	}}
	svc, conv := newTestService(t, ag)

	user, reply, err := svc.Ask(context.Background(), conv.ID, "Pricing")
	require.NoError(t, err)

	assert.Equal(t, core.RoleUser, user.Role)
	assert.Equal(t, "Pricing", user.Content)

	// Exactly one agent message carrying the response unchanged.
	assert.Equal(t, core.RoleAgent, reply.Role)
	assert.Equal(t, ag.reply.Answer, reply.Content)
	assert.Equal(t, ag.reply.Confidence, reply.Confidence)
	assert.Equal(t, ag.reply.Sources, reply.Sources)
	assert.Equal(t, ag.reply.FollowUps, reply.FollowUps)

	got, ok := svc.Store().Get(conv.ID)
	require.True(t, ok)
	require.Len(t, got.Messages, 3) // welcome + user + agent
	assert.Equal(t, user.ID, got.Messages[1].ID)
	assert.Equal(t, reply.ID, got.Messages[2].ID)
	assert.Equal(t, 1, ag.calls)
}

func TestService_Ask_UserMessageAppendedBeforeCall(t *testing.T) {
	t.Parallel()
	var seenDuringCall []core.Message

	store, _ := newTestStore(t)
	conv := store.All()[0]
	ag := &fakeAgent{reply: core.Reply{Answer: "ok"}}
	svc := NewService(store, ag)
	ag.onCall = func() {
		got, _ := store.Get(conv.ID)
		seenDuringCall = append([]core.Message(nil), got.Messages...)
	}

	_, _, err := svc.Ask(context.Background(), conv.ID, "Pricing")
	require.NoError(t, err)

	require.Len(t, seenDuringCall, 2, "user message must be in the store when the agent is invoked")
	assert.Equal(t, "Pricing", seenDuringCall[1].Content)
}

func TestService_Ask_BlankInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"whitespace mix", " \t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ag := &fakeAgent{}
			svc, conv := newTestService(t, ag)
			before, _ := svc.Store().Get(conv.ID)

			_, _, err := svc.Ask(context.Background(), conv.ID, tt.input)
			require.ErrorIs(t, err, ErrEmptyInput)

			after, _ := svc.Store().Get(conv.ID)
			assert.Len(t, after.Messages, len(before.Messages), "no messages may be appended")
			assert.Zero(t, ag.calls, "no network call may happen")
		})
	}
}

func TestService_Ask_MissingConversation(t *testing.T) {
	t.Parallel()
	ag := &fakeAgent{}
	svc, _ := newTestService(t, ag)

	_, _, err := svc.Ask(context.Background(), "no-such-id", "hello")
	require.ErrorIs(t, err, ErrConversationNotFound)
	assert.Zero(t, ag.calls)
}

func TestService_Request_TransportFailure(t *testing.T) {
	t.Parallel()
	ag := &fakeAgent{err: errors.New("connection refused")}
	svc, conv := newTestService(t, ag)

	_, reply, err := svc.Ask(context.Background(), conv.ID, "help")
	require.NoError(t, err)

	assert.Equal(t, core.RoleAgent, reply.Role)
	assert.Equal(t, fallbackText, reply.Content)

	got, _ := svc.Store().Get(conv.ID)
	assert.Len(t, got.Messages, 3, "exactly one fallback message appended")
}

func TestService_Request_ServiceErrorUsesServerMessage(t *testing.T) {
	t.Parallel()
	ag := &fakeAgent{err: &core.ServiceError{Message: "Agent is over capacity, try later."}}
	svc, conv := newTestService(t, ag)

	_, reply, err := svc.Ask(context.Background(), conv.ID, "help")
	require.NoError(t, err)
	assert.Equal(t, "Agent is over capacity, try later.", reply.Content)
}

func TestService_Request_RecoversPanic(t *testing.T) {
	t.Parallel()
	ag := &fakeAgent{panics: true}
	svc, conv := newTestService(t, ag)

	_, reply, err := svc.Ask(context.Background(), conv.ID, "help")
	require.NoError(t, err)

	assert.Equal(t, core.RoleAgent, reply.Role)
	assert.Equal(t, fallbackText, reply.Content)

	got, _ := svc.Store().Get(conv.ID)
	assert.Len(t, got.Messages, 3)
}
