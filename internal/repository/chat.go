package repository

import (
	"context"
	"fmt"

	"digital_market/internal/domain"
	"digital_market/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatRepository хранит журнал сообщений только на добавление:
// операций изменения и удаления нет.
type ChatRepository interface {
	CreateMessage(ctx context.Context, message *domain.ChatMessage) error
	// ListMessages возвращает последние limit сообщений по возрастанию времени,
	// при равном времени - в порядке вставки.
	ListMessages(ctx context.Context, limit int) ([]domain.ChatMessage, error)
}

type chatRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewChatRepository(db *pgxpool.Pool, log logger.Logger) ChatRepository {
	return &chatRepository{db: db, log: log}
}

func (r *chatRepository) CreateMessage(ctx context.Context, message *domain.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, sender_email, conversation_with, message, is_admin, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING sent_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ID, message.SenderEmail, message.ConversationWith,
		message.Message, message.IsAdmin, message.Timestamp,
	).Scan(&message.Timestamp)

	if err != nil {
		r.log.Error("Failed to create chat message", "error", err)
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	return nil
}

func (r *chatRepository) ListMessages(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	query := `
		SELECT id, sender_email, conversation_with, message, is_admin, sent_at
		FROM (
			SELECT id, seq, sender_email, conversation_with, message, is_admin, sent_at
			FROM chat_messages
			ORDER BY sent_at DESC, seq DESC
			LIMIT $1
		) latest
		ORDER BY sent_at ASC, seq ASC
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to list chat messages", "error", err)
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.ChatMessage, 0)
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.SenderEmail, &m.ConversationWith, &m.Message, &m.IsAdmin, &m.Timestamp); err != nil {
			r.log.Error("Failed to scan chat message", "error", err)
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
