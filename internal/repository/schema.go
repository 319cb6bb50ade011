package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Таблицы создаются при старте, если их ещё нет.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id UUID PRIMARY KEY,
		seq BIGSERIAL NOT NULL,
		sender_email TEXT NOT NULL,
		conversation_with TEXT NOT NULL,
		message TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		sent_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_sent_at ON chat_messages (sent_at, seq)`,
	`CREATE TABLE IF NOT EXISTS game_accounts (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		seller TEXT NOT NULL,
		image_data TEXT,
		game_type TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_game_accounts_created_at ON game_accounts (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS status_checks (
		id UUID PRIMARY KEY,
		client_name TEXT NOT NULL,
		checked_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id BIGSERIAL PRIMARY KEY,
		event_time TIMESTAMPTZ NOT NULL,
		actor_email TEXT,
		actor_role TEXT NOT NULL,
		event_type TEXT NOT NULL,
		payload JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
}

func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
