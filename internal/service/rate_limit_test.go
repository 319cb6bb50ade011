package service

import (
	"context"
	"testing"
	"time"

	"digital_market/internal/domain"
	"digital_market/pkg/logger"

	"github.com/stretchr/testify/require"
)

func TestRateLimitService_Allow(t *testing.T) {
	repo := &stubRateLimitRepo{}
	svc := NewRateLimitService(repo, logger.Nop())
	rule := domain.RateLimitRule{Scope: domain.RateLimitScopeIP, Limit: 2, Window: time.Minute}
	ctx := context.Background()

	allowed, remaining, err := svc.Allow(ctx, rule, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, 1, remaining)

	allowed, remaining, err = svc.Allow(ctx, rule, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, 0, remaining)

	allowed, _, err = svc.Allow(ctx, rule, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, allowed)

	require.Equal(t, int64(3), repo.counts["ratelimit:ip:10.0.0.1"])
}

func TestRateLimitService_DisabledRule(t *testing.T) {
	repo := &stubRateLimitRepo{}
	svc := NewRateLimitService(repo, logger.Nop())

	allowed, _, err := svc.Allow(context.Background(), domain.RateLimitRule{Scope: domain.RateLimitScopeIP}, "x")
	require.NoError(t, err)
	require.True(t, allowed)
	require.Empty(t, repo.counts)
}
