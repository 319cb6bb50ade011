package service

import (
	"context"
	"time"

	"digital_market/internal/domain"
	"digital_market/internal/repository"
	"digital_market/pkg/logger"
)

type AuditService interface {
	LogEvent(ctx context.Context, actorEmail *string, actorRole string, eventType string, payload map[string]interface{}) error
}

type auditService struct {
	auditRepo repository.AuditRepository
	log       logger.Logger
}

func NewAuditService(auditRepo repository.AuditRepository, log logger.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		log:       log,
	}
}

func (s *auditService) LogEvent(ctx context.Context, actorEmail *string, actorRole string, eventType string, payload map[string]interface{}) error {
	if payload == nil {
		payload = make(map[string]interface{})
	}

	auditLog := &domain.AuditLog{
		EventTime:  time.Now().UTC(),
		ActorEmail: actorEmail,
		ActorRole:  actorRole,
		EventType:  eventType,
		Payload:    payload,
	}

	return s.auditRepo.CreateLog(ctx, auditLog)
}

// logAudit пишет событие аудита; ошибка не прерывает основной запрос.
func logAudit(ctx context.Context, audit AuditService, log logger.Logger, actorEmail *string, actorRole, eventType string, payload map[string]interface{}) {
	if audit == nil {
		return
	}
	if err := audit.LogEvent(ctx, actorEmail, actorRole, eventType, payload); err != nil {
		log.Warn("Failed to write audit event", "event_type", eventType, "error", err)
	}
}
