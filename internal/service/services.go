package service

import (
	"fmt"

	"digital_market/internal/config"
	"digital_market/internal/repository"
	"digital_market/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// validate общий для всех сервисов: validator кэширует разбор struct-тегов.
var validate = validator.New()

type Services struct {
	Auth      AuthService
	Chat      ChatService
	Account   AccountService
	Status    StatusService
	Audit     AuditService
	RateLimit RateLimitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log logger.Logger) (*Services, error) {
	audit := NewAuditService(repos.Audit, log)
	rateLimit := NewRateLimitService(repos.RateLimit, log)

	auth, err := NewAuthService(cfg.Admin, cfg.JWT, audit, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init auth service: %w", err)
	}

	services := &Services{
		Auth:      auth,
		Chat:      NewChatService(repos.Chat, rateLimit, cfg.Admin.Email, cfg.Chat, cfg.RateLimit, log),
		Account:   NewAccountService(repos.Account, audit, cfg.Upload, log),
		Status:    NewStatusService(repos.Status, log),
		Audit:     audit,
		RateLimit: rateLimit,
	}

	log.Info("Services initialized")

	return services, nil
}
