package core

import "context"

// ConversationsRepository mirrors the in-memory conversation list to durable
// local storage. Writes happen through SaveConversation/SaveMessage on every
// mutation; LoadAll runs once at startup.
type ConversationsRepository interface {
	SaveConversation(ctx context.Context, conv Conversation) error
	SaveMessage(ctx context.Context, conversationID string, msg Message) error
	LoadAll(ctx context.Context) ([]Conversation, error)
	// Replace swaps the entire stored history for the given set, preserving
	// message order. Used by snapshot import.
	Replace(ctx context.Context, convs []Conversation) error
}
