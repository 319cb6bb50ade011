package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"digital_market/internal/config"
	"digital_market/internal/domain"
	apperrors "digital_market/pkg/errors"
	"digital_market/pkg/jwt"
	"digital_market/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	VerifyCode(ctx context.Context, code string, clientIP string) (*VerifyCodeResult, error)
	ValidateToken(ctx context.Context, tokenString string) (*jwt.Claims, error)
	AdminEmail() string
}

type VerifyCodeResult struct {
	Valid     bool       `json:"valid"`
	Message   string     `json:"message"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type authService struct {
	adminEmail     string
	accessCodeHash []byte
	jwtCfg         config.JWTConfig
	audit          AuditService
	log            logger.Logger
}

// NewAuthService хеширует ADMIN_ACCESS_CODE, если готовый bcrypt-хеш не задан.
func NewAuthService(adminCfg config.AdminConfig, jwtCfg config.JWTConfig, audit AuditService, log logger.Logger) (AuthService, error) {
	hash := []byte(adminCfg.AccessCodeHash)
	if len(hash) == 0 {
		if adminCfg.AccessCode == "" {
			return nil, errors.New("admin access code is not configured")
		}
		generated, err := bcrypt.GenerateFromPassword([]byte(adminCfg.AccessCode), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash access code: %w", err)
		}
		hash = generated
	}

	return &authService{
		adminEmail:     strings.ToLower(strings.TrimSpace(adminCfg.Email)),
		accessCodeHash: hash,
		jwtCfg:         jwtCfg,
		audit:          audit,
		log:            log,
	}, nil
}

func (s *authService) AdminEmail() string {
	return s.adminEmail
}

func (s *authService) VerifyCode(ctx context.Context, code string, clientIP string) (*VerifyCodeResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", apperrors.ErrBadRequest)
	}

	if err := bcrypt.CompareHashAndPassword(s.accessCodeHash, []byte(code)); err != nil {
		s.log.Warn("Rejected admin access code", "client_ip", clientIP)
		logAudit(ctx, s.audit, s.log, nil, domain.ActorRoleBuyer, domain.EventTypeAdminVerifyRejected,
			map[string]interface{}{"client_ip": clientIP})
		return &VerifyCodeResult{Valid: false, Message: "Invalid access code"}, nil
	}

	token, expiresAt, err := jwt.GenerateAccessToken(s.adminEmail, jwt.RoleAdmin, s.jwtCfg.Issuer, s.jwtCfg.AccessSecret, s.jwtCfg.AccessTTL)
	if err != nil {
		s.log.Error("Failed to generate access token", "error", err)
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	logAudit(ctx, s.audit, s.log, &s.adminEmail, domain.ActorRoleAdmin, domain.EventTypeAdminVerified,
		map[string]interface{}{"client_ip": clientIP})

	return &VerifyCodeResult{
		Valid:     true,
		Message:   "Access code accepted, you can post listings",
		Token:     token,
		ExpiresAt: &expiresAt,
	}, nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateToken(tokenString, s.jwtCfg.AccessSecret, s.jwtCfg.Issuer)
	if err != nil {
		return nil, err
	}
	if claims.Role != jwt.RoleAdmin || claims.Email != s.adminEmail {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// isAdmin проверяет, что вызывающий предъявил действующий токен администратора.
func isAdmin(actor *jwt.Claims, adminEmail string) bool {
	return actor != nil && actor.Role == jwt.RoleAdmin && actor.Email == adminEmail
}
