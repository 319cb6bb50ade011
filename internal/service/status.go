package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"digital_market/internal/domain"
	"digital_market/internal/repository"
	apperrors "digital_market/pkg/errors"
	"digital_market/pkg/logger"

	"github.com/google/uuid"
)

const listStatusChecksLimit = 1000

type StatusService interface {
	Create(ctx context.Context, clientName string) (*domain.StatusCheck, error)
	List(ctx context.Context) ([]*domain.StatusCheck, error)
}

type statusService struct {
	statusRepo repository.StatusRepository
	log        logger.Logger
}

func NewStatusService(statusRepo repository.StatusRepository, log logger.Logger) StatusService {
	return &statusService{
		statusRepo: statusRepo,
		log:        log,
	}
}

func (s *statusService) Create(ctx context.Context, clientName string) (*domain.StatusCheck, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, fmt.Errorf("%w: client_name is required", apperrors.ErrBadRequest)
	}

	check := &domain.StatusCheck{
		ID:         uuid.New(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.statusRepo.Create(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

func (s *statusService) List(ctx context.Context) ([]*domain.StatusCheck, error) {
	return s.statusRepo.List(ctx, listStatusChecksLimit)
}
