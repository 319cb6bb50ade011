package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"digital_market/internal/config"
	"digital_market/internal/conversation"
	"digital_market/internal/domain"
	"digital_market/internal/repository"
	apperrors "digital_market/pkg/errors"
	"digital_market/pkg/jwt"
	"digital_market/pkg/logger"

	"github.com/google/uuid"
)

type ChatService interface {
	SendMessage(ctx context.Context, in SendMessageInput, actor *jwt.Claims) (*domain.ChatMessage, error)
	ListMessages(ctx context.Context) ([]domain.ChatMessage, error)
	Transcript(ctx context.Context, viewer string) ([]domain.ChatMessage, error)
	Conversations(ctx context.Context) ([]domain.ConversationSummary, error)
}

// SendMessageInput повторяет контракт клиента: администратор указывает
// покупателя в conversation_with, старые клиенты кладут его в sender_email.
type SendMessageInput struct {
	SenderEmail      string
	ConversationWith string
	Message          string
	IsAdmin          bool
}

type chatService struct {
	chatRepo      repository.ChatRepository
	rateLimit     RateLimitService
	adminEmail    string
	snapshotLimit int
	maxLength     int
	sendRule      domain.RateLimitRule
	now           func() time.Time
	log           logger.Logger
}

func NewChatService(
	chatRepo repository.ChatRepository,
	rateLimit RateLimitService,
	adminEmail string,
	chatCfg config.ChatConfig,
	rateCfg config.RateLimitConfig,
	log logger.Logger,
) ChatService {
	return &chatService{
		chatRepo:      chatRepo,
		rateLimit:     rateLimit,
		adminEmail:    normalizeEmail(adminEmail),
		snapshotLimit: chatCfg.SnapshotLimit,
		maxLength:     chatCfg.MaxMessageLength,
		sendRule: domain.RateLimitRule{
			Scope:  domain.RateLimitScopeSender,
			Limit:  rateCfg.ChatPerMinute,
			Window: time.Minute,
		},
		now: func() time.Time { return time.Now().UTC() },
		log: log,
	}
}

func (s *chatService) SendMessage(ctx context.Context, in SendMessageInput, actor *jwt.Claims) (*domain.ChatMessage, error) {
	body := strings.TrimSpace(in.Message)
	if body == "" {
		return nil, fmt.Errorf("%w: message is required", apperrors.ErrBadRequest)
	}
	if utf8.RuneCountInString(body) > s.maxLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", apperrors.ErrBadRequest, s.maxLength)
	}

	var sender, counterpart string
	if in.IsAdmin {
		if !isAdmin(actor, s.adminEmail) {
			return nil, fmt.Errorf("%w: admin token required to reply as admin", apperrors.ErrForbidden)
		}
		counterpart = normalizeEmail(in.ConversationWith)
		if counterpart == "" {
			counterpart = normalizeEmail(in.SenderEmail)
		}
		if counterpart == "" || counterpart == s.adminEmail {
			return nil, fmt.Errorf("%w: conversation_with must name a buyer", apperrors.ErrBadRequest)
		}
		sender = s.adminEmail
	} else {
		sender = normalizeEmail(in.SenderEmail)
		if err := validate.Var(sender, "required,email"); err != nil {
			return nil, fmt.Errorf("%w: sender_email must be a valid e-mail", apperrors.ErrBadRequest)
		}
		if sender == s.adminEmail {
			return nil, fmt.Errorf("%w: use is_admin with an admin token to write as admin", apperrors.ErrForbidden)
		}
		counterpart = s.adminEmail
	}

	allowed, _, err := s.rateLimit.Allow(ctx, s.sendRule, sender)
	if err != nil {
		return nil, fmt.Errorf("failed to check chat rate limit: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: too many messages, try again later", apperrors.ErrRateLimited)
	}

	message := &domain.ChatMessage{
		ID:               uuid.New(),
		SenderEmail:      sender,
		ConversationWith: counterpart,
		Message:          body,
		Timestamp:        s.now(),
		IsAdmin:          in.IsAdmin,
	}

	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	s.log.Debug("Chat message stored", "message_id", message.ID, "is_admin", message.IsAdmin)
	return message, nil
}

func (s *chatService) ListMessages(ctx context.Context) ([]domain.ChatMessage, error) {
	return s.chatRepo.ListMessages(ctx, s.snapshotLimit)
}

func (s *chatService) Transcript(ctx context.Context, viewer string) ([]domain.ChatMessage, error) {
	viewer = normalizeEmail(viewer)
	if viewer == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrBadRequest)
	}
	if viewer == s.adminEmail {
		return nil, fmt.Errorf("%w: transcript viewer must not be the admin", apperrors.ErrBadRequest)
	}

	snapshot, err := s.chatRepo.ListMessages(ctx, s.snapshotLimit)
	if err != nil {
		return nil, err
	}
	return conversation.DeriveTranscript(snapshot, viewer, s.adminEmail), nil
}

func (s *chatService) Conversations(ctx context.Context) ([]domain.ConversationSummary, error) {
	snapshot, err := s.chatRepo.ListMessages(ctx, s.snapshotLimit)
	if err != nil {
		return nil, err
	}
	return conversation.DeriveConversationIndex(snapshot, s.adminEmail), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
