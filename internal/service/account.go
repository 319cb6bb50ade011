package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"digital_market/internal/config"
	"digital_market/internal/domain"
	"digital_market/internal/repository"
	apperrors "digital_market/pkg/errors"
	"digital_market/pkg/jwt"
	"digital_market/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const listAccountsLimit = 100

type AccountService interface {
	List(ctx context.Context) ([]*domain.Account, error)
	Create(ctx context.Context, in CreateAccountInput, actor *jwt.Claims) (*domain.Account, error)
	Delete(ctx context.Context, id uuid.UUID, actor *jwt.Claims) error
}

type CreateAccountInput struct {
	Title       string  `validate:"required,max=200"`
	Description string  `validate:"required,max=5000"`
	Price       float64 `validate:"gte=0"`
	// Image необязательно; nil - объявление без картинки.
	Image io.Reader `validate:"-"`
}

type accountService struct {
	accountRepo   repository.AccountRepository
	audit         AuditService
	maxImageBytes int64
	log           logger.Logger
}

func NewAccountService(accountRepo repository.AccountRepository, audit AuditService, uploadCfg config.UploadConfig, log logger.Logger) AccountService {
	return &accountService{
		accountRepo:   accountRepo,
		audit:         audit,
		maxImageBytes: uploadCfg.MaxImageBytes,
		log:           log,
	}
}

func (s *accountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.accountRepo.List(ctx, listAccountsLimit)
}

func (s *accountService) Create(ctx context.Context, in CreateAccountInput, actor *jwt.Claims) (*domain.Account, error) {
	if actor == nil || actor.Role != jwt.RoleAdmin {
		return nil, fmt.Errorf("%w: only the admin can post listings", apperrors.ErrForbidden)
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
	}
	if math.IsInf(in.Price, 0) || math.IsNaN(in.Price) {
		return nil, fmt.Errorf("%w: price must be a finite number", apperrors.ErrBadRequest)
	}

	var imageData *string
	if in.Image != nil {
		dataURL, err := s.encodeImage(in.Image)
		if err != nil {
			return nil, err
		}
		imageData = &dataURL
	}

	account := &domain.Account{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Seller:      domain.DefaultSeller,
		ImageData:   imageData,
		GameType:    domain.DefaultGameType,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	logAudit(ctx, s.audit, s.log, &actor.Email, domain.ActorRoleAdmin, domain.EventTypeAccountCreated,
		map[string]interface{}{"account_id": account.ID.String(), "title": account.Title})

	return account, nil
}

// encodeImage проверяет содержимое по сигнатуре файла, а не по Content-Type клиента,
// и возвращает data URL.
func (s *accountService) encodeImage(r io.Reader) (string, error) {
	content, err := io.ReadAll(io.LimitReader(r, s.maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(content)) > s.maxImageBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", apperrors.ErrImageTooLarge, s.maxImageBytes)
	}

	mime := mimetype.Detect(content)
	mediaType := strings.TrimSpace(strings.SplitN(mime.String(), ";", 2)[0])
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: got %s", apperrors.ErrInvalidImage, mediaType)
	}

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(content), nil
}

func (s *accountService) Delete(ctx context.Context, id uuid.UUID, actor *jwt.Claims) error {
	if actor == nil || actor.Role != jwt.RoleAdmin {
		return fmt.Errorf("%w: only the admin can delete listings", apperrors.ErrForbidden)
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	logAudit(ctx, s.audit, s.log, &actor.Email, domain.ActorRoleAdmin, domain.EventTypeAccountDeleted,
		map[string]interface{}{"account_id": id.String()})

	return nil
}
