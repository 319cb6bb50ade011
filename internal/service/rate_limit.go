package service

import (
	"context"

	"digital_market/internal/domain"
	"digital_market/internal/repository"
	"digital_market/pkg/logger"
)

type RateLimitService interface {
	// Allow регистрирует запрос субъекта и сообщает, укладывается ли он в правило.
	Allow(ctx context.Context, rule domain.RateLimitRule, subject string) (allowed bool, remaining int, err error)
}

type rateLimitService struct {
	rateLimitRepo repository.RateLimitRepository
	log           logger.Logger
}

func NewRateLimitService(rateLimitRepo repository.RateLimitRepository, log logger.Logger) RateLimitService {
	return &rateLimitService{
		rateLimitRepo: rateLimitRepo,
		log:           log,
	}
}

func (s *rateLimitService) Allow(ctx context.Context, rule domain.RateLimitRule, subject string) (bool, int, error) {
	if rule.Limit <= 0 {
		return true, 0, nil
	}

	count, err := s.rateLimitRepo.Hit(ctx, rule.Key(subject), rule.Window)
	if err != nil {
		return false, 0, err
	}

	remaining := rule.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	if int(count) > rule.Limit {
		s.log.Warn("Rate limit exceeded", "scope", rule.Scope, "subject", subject, "count", count)
		return false, 0, nil
	}
	return true, remaining, nil
}
