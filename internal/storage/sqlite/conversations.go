package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/helpbot/internal/core"
	"github.com/sandevgo/helpbot/pkg/log"
)

// timeLayout keeps nanosecond precision so a save/load round trip is
// value-equal for UTC timestamps.
const timeLayout = time.RFC3339Nano

type ConversationsRepo struct {
	db *sql.DB
}

func NewConversationsRepo(db *sql.DB) *ConversationsRepo {
	return &ConversationsRepo{db: db}
}

func (r *ConversationsRepo) SaveConversation(ctx context.Context, conv core.Conversation) error {
	query := `INSERT INTO conversations (id, title, preview, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, preview = excluded.preview, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, conv.ID, conv.Title, conv.Preview, conv.UpdatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to upsert conversation: %w", err)
	}
	return nil
}

func (r *ConversationsRepo) SaveMessage(ctx context.Context, conversationID string, msg core.Message) error {
	sourcesStr, err := marshalList(msg.Sources)
	if err != nil {
		return fmt.Errorf("failed to marshal sources: %w", err)
	}
	followupsStr, err := marshalList(msg.FollowUps)
	if err != nil {
		return fmt.Errorf("failed to marshal followups: %w", err)
	}

	var confidence sql.NullFloat64
	if msg.Confidence != nil {
		confidence = sql.NullFloat64{Float64: *msg.Confidence, Valid: true}
	}

	query := `INSERT INTO messages (msg_id, conversation_id, role, content, confidence, sources, followups, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		msg.ID, conversationID, msg.Role, msg.Content,
		confidence, sourcesStr, followupsStr, msg.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *ConversationsRepo) LoadAll(ctx context.Context) ([]core.Conversation, error) {
	logger := log.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, `SELECT id, title, preview, updated_at FROM conversations ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var convs []core.Conversation
	for rows.Next() {
		var conv core.Conversation
		var updatedAt string
		if err := rows.Scan(&conv.ID, &conv.Title, &conv.Preview, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conv.UpdatedAt, err = time.Parse(timeLayout, updatedAt)
		if err != nil {
			// Malformed persisted data is logged and skipped, never fatal.
			logger.Warn().Err(err).Str("conversation", conv.ID).Msg("skipping conversation with malformed timestamp")
			continue
		}
		convs = append(convs, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range convs {
		msgs, err := r.loadMessages(ctx, convs[i].ID)
		if err != nil {
			return nil, err
		}
		convs[i].Messages = msgs
	}

	logger.Debug().Int("count", len(convs)).Msg("loaded conversations")
	return convs, nil
}

func (r *ConversationsRepo) loadMessages(ctx context.Context, conversationID string) ([]core.Message, error) {
	logger := log.FromCtx(ctx)

	query := `SELECT msg_id, role, content, confidence, sources, followups, created_at
		FROM messages WHERE conversation_id = ? ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []core.Message
	for rows.Next() {
		var msg core.Message
		var confidence sql.NullFloat64
		var sourcesStr, followupsStr sql.NullString
		var createdAt string

		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &confidence, &sourcesStr, &followupsStr, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		if confidence.Valid {
			c := confidence.Float64
			msg.Confidence = &c
		}
		if err := unmarshalList(sourcesStr, &msg.Sources); err != nil {
			logger.Warn().Err(err).Str("message", msg.ID).Msg("skipping message with malformed sources")
			continue
		}
		if err := unmarshalList(followupsStr, &msg.FollowUps); err != nil {
			logger.Warn().Err(err).Str("message", msg.ID).Msg("skipping message with malformed followups")
			continue
		}
		msg.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			logger.Warn().Err(err).Str("message", msg.ID).Msg("skipping message with malformed timestamp")
			continue
		}

		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *ConversationsRepo) Replace(ctx context.Context, convs []core.Conversation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM conversations`); err != nil {
		return fmt.Errorf("failed to clear conversations: %w", err)
	}

	for _, conv := range convs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO conversations (id, title, preview, updated_at) VALUES (?, ?, ?, ?)`,
			conv.ID, conv.Title, conv.Preview, conv.UpdatedAt.UTC().Format(timeLayout))
		if err != nil {
			return fmt.Errorf("failed to insert conversation: %w", err)
		}

		for _, msg := range conv.Messages {
			sourcesStr, err := marshalList(msg.Sources)
			if err != nil {
				return fmt.Errorf("failed to marshal sources: %w", err)
			}
			followupsStr, err := marshalList(msg.FollowUps)
			if err != nil {
				return fmt.Errorf("failed to marshal followups: %w", err)
			}
			var confidence sql.NullFloat64
			if msg.Confidence != nil {
				confidence = sql.NullFloat64{Float64: *msg.Confidence, Valid: true}
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO messages (msg_id, conversation_id, role, content, confidence, sources, followups, created_at)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				msg.ID, conv.ID, msg.Role, msg.Content,
				confidence, sourcesStr, followupsStr, msg.CreatedAt.UTC().Format(timeLayout))
			if err != nil {
				return fmt.Errorf("failed to insert message: %w", err)
			}
		}
	}

	return tx.Commit()
}

// marshalList stores nil/empty slices as an empty string to save space.
func marshalList(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	s := string(data)
	if s == "null" || s == "[]" {
		return "", nil
	}
	return s, nil
}

func unmarshalList(s sql.NullString, out any) error {
	if !s.Valid || s.String == "" || s.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(s.String), out)
}
