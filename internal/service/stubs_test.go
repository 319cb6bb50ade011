package service

import (
	"context"
	"errors"
	"time"

	"digital_market/internal/domain"
	apperrors "digital_market/pkg/errors"

	"github.com/google/uuid"
)

type stubChatRepo struct {
	messages  []domain.ChatMessage
	lastLimit int
	createErr error
	listErr   error
}

func (r *stubChatRepo) CreateMessage(_ context.Context, message *domain.ChatMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.messages = append(r.messages, *message)
	return nil
}

func (r *stubChatRepo) ListMessages(_ context.Context, limit int) ([]domain.ChatMessage, error) {
	r.lastLimit = limit
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.ChatMessage, len(r.messages))
	copy(out, r.messages)
	return out, nil
}

type stubAccountRepo struct {
	accounts  []*domain.Account
	createErr error
	lastLimit int
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.accounts = append(r.accounts, account)
	return nil
}

func (r *stubAccountRepo) List(_ context.Context, limit int) ([]*domain.Account, error) {
	r.lastLimit = limit
	return r.accounts, nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, a := range r.accounts {
		if a.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAccountNotFound
}

type stubStatusRepo struct {
	checks    []*domain.StatusCheck
	lastLimit int
}

func (r *stubStatusRepo) Create(_ context.Context, check *domain.StatusCheck) error {
	r.checks = append(r.checks, check)
	return nil
}

func (r *stubStatusRepo) List(_ context.Context, limit int) ([]*domain.StatusCheck, error) {
	r.lastLimit = limit
	return r.checks, nil
}

type stubAuditRepo struct {
	logs []*domain.AuditLog
	err  error
}

func (r *stubAuditRepo) CreateLog(_ context.Context, log *domain.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, log)
	return nil
}

type stubRateLimitRepo struct {
	counts map[string]int64
	err    error
}

func (r *stubRateLimitRepo) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.counts == nil {
		r.counts = make(map[string]int64)
	}
	r.counts[key]++
	return r.counts[key], nil
}

type stubAuditService struct {
	events []string
}

func (s *stubAuditService) LogEvent(_ context.Context, _ *string, _ string, eventType string, _ map[string]interface{}) error {
	s.events = append(s.events, eventType)
	return nil
}

var errStorage = errors.New("storage unavailable")
