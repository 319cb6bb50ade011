package handler

import (
	"digital_market/internal/service"
	"digital_market/pkg/logger"
)

type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Chat    *ChatHandler
	Account *AccountHandler
	Status  *StatusHandler
}

func NewHandlers(services *service.Services, log logger.Logger) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(),
		Auth:    NewAuthHandler(services.Auth, log),
		Chat:    NewChatHandler(services.Chat, log),
		Account: NewAccountHandler(services.Account, log),
		Status:  NewStatusHandler(services.Status, log),
	}
}
