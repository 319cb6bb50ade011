package repository

import (
	"context"
	"fmt"

	"digital_market/internal/domain"
	"digital_market/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatusRepository interface {
	Create(ctx context.Context, check *domain.StatusCheck) error
	List(ctx context.Context, limit int) ([]*domain.StatusCheck, error)
}

type statusRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewStatusRepository(db *pgxpool.Pool, log logger.Logger) StatusRepository {
	return &statusRepository{db: db, log: log}
}

func (r *statusRepository) Create(ctx context.Context, check *domain.StatusCheck) error {
	query := `
		INSERT INTO status_checks (id, client_name, checked_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.Exec(ctx, query, check.ID, check.ClientName, check.Timestamp); err != nil {
		r.log.Error("Failed to create status check", "error", err)
		return fmt.Errorf("failed to create status check: %w", err)
	}

	return nil
}

func (r *statusRepository) List(ctx context.Context, limit int) ([]*domain.StatusCheck, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, client_name, checked_at
		FROM status_checks
		ORDER BY checked_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		r.log.Error("Failed to list status checks", "error", err)
		return nil, fmt.Errorf("failed to list status checks: %w", err)
	}
	defer rows.Close()

	checks := make([]*domain.StatusCheck, 0)
	for rows.Next() {
		c := &domain.StatusCheck{}
		if err := rows.Scan(&c.ID, &c.ClientName, &c.Timestamp); err != nil {
			r.log.Error("Failed to scan status check", "error", err)
			return nil, err
		}
		checks = append(checks, c)
	}

	return checks, rows.Err()
}
