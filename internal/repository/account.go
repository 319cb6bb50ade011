package repository

import (
	"context"
	"fmt"

	"digital_market/internal/domain"
	apperrors "digital_market/pkg/errors"
	"digital_market/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	List(ctx context.Context, limit int) ([]*domain.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type accountRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewAccountRepository(db *pgxpool.Pool, log logger.Logger) AccountRepository {
	return &accountRepository{db: db, log: log}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO game_accounts (id, title, description, price, seller, image_data, game_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		account.ID, account.Title, account.Description, account.Price,
		account.Seller, account.ImageData, account.GameType, account.CreatedAt,
	).Scan(&account.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create account", "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (r *accountRepository) List(ctx context.Context, limit int) ([]*domain.Account, error) {
	query := `
		SELECT id, title, description, price, seller, image_data, game_type, created_at
		FROM game_accounts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to list accounts", "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		a := &domain.Account{}
		err := rows.Scan(
			&a.ID, &a.Title, &a.Description, &a.Price,
			&a.Seller, &a.ImageData, &a.GameType, &a.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan account", "error", err)
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM game_accounts WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete account", "error", err, "account_id", id)
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
