package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"digital_market/internal/config"
	"digital_market/internal/domain"
	apperrors "digital_market/pkg/errors"
	"digital_market/pkg/jwt"
	"digital_market/pkg/logger"

	"github.com/stretchr/testify/require"
)

const adminEmail = "owner@shop.test"

func newTestChatService(repo *stubChatRepo, limiter *stubRateLimitRepo, perMinute int) *chatService {
	rateLimit := NewRateLimitService(limiter, logger.Nop())
	svc := NewChatService(repo, rateLimit, adminEmail,
		config.ChatConfig{SnapshotLimit: 500, MaxMessageLength: 20},
		config.RateLimitConfig{ChatPerMinute: perMinute},
		logger.Nop(),
	).(*chatService)

	tick := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return svc
}

func adminClaims() *jwt.Claims {
	return &jwt.Claims{Email: adminEmail, Role: jwt.RoleAdmin}
}

func TestSendMessage_BuyerToAdmin(t *testing.T) {
	repo := &stubChatRepo{}
	svc := newTestChatService(repo, &stubRateLimitRepo{}, 10)

	msg, err := svc.SendMessage(context.Background(), SendMessageInput{SenderEmail: "  Buyer@X.com ", Message: " hi "}, nil)
	require.NoError(t, err)
	require.Equal(t, "buyer@x.com", msg.SenderEmail)
	require.Equal(t, adminEmail, msg.ConversationWith)
	require.Equal(t, "hi", msg.Message)
	require.False(t, msg.IsAdmin)
	require.Len(t, repo.messages, 1)
}

func TestSendMessage_AdminReply(t *testing.T) {
	repo := &stubChatRepo{}
	svc := newTestChatService(repo, &stubRateLimitRepo{}, 10)

	msg, err := svc.SendMessage(context.Background(), SendMessageInput{ConversationWith: "buyer@x.com", Message: "hello", IsAdmin: true}, adminClaims())
	require.NoError(t, err)
	require.Equal(t, adminEmail, msg.SenderEmail)
	require.Equal(t, "buyer@x.com", msg.ConversationWith)
	require.True(t, msg.IsAdmin)
}

func TestSendMessage_AdminReplyFallsBackToSenderEmailField(t *testing.T) {
	svc := newTestChatService(&stubChatRepo{}, &stubRateLimitRepo{}, 10)

	msg, err := svc.SendMessage(context.Background(), SendMessageInput{SenderEmail: "buyer@x.com", Message: "hello", IsAdmin: true}, adminClaims())
	require.NoError(t, err)
	require.Equal(t, adminEmail, msg.SenderEmail)
	require.Equal(t, "buyer@x.com", msg.ConversationWith)
}

func TestSendMessage_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		in    SendMessageInput
		actor *jwt.Claims
		want  error
	}{
		{"empty body", SendMessageInput{SenderEmail: "a@x.com", Message: "   "}, nil, apperrors.ErrBadRequest},
		{"too long", SendMessageInput{SenderEmail: "a@x.com", Message: strings.Repeat("x", 21)}, nil, apperrors.ErrBadRequest},
		{"bad sender", SendMessageInput{SenderEmail: "not-an-email", Message: "hi"}, nil, apperrors.ErrBadRequest},
		{"missing sender", SendMessageInput{Message: "hi"}, nil, apperrors.ErrBadRequest},
		{"buyer posing as admin", SendMessageInput{SenderEmail: adminEmail, Message: "hi"}, nil, apperrors.ErrForbidden},
		{"admin flag without token", SendMessageInput{ConversationWith: "a@x.com", Message: "hi", IsAdmin: true}, nil, apperrors.ErrForbidden},
		{"admin flag with foreign token", SendMessageInput{ConversationWith: "a@x.com", Message: "hi", IsAdmin: true}, &jwt.Claims{Email: "x@x.com", Role: jwt.RoleAdmin}, apperrors.ErrForbidden},
		{"admin to nobody", SendMessageInput{Message: "hi", IsAdmin: true}, adminClaims(), apperrors.ErrBadRequest},
		{"admin to self", SendMessageInput{ConversationWith: adminEmail, Message: "hi", IsAdmin: true}, adminClaims(), apperrors.ErrBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubChatRepo{}
			svc := newTestChatService(repo, &stubRateLimitRepo{}, 10)

			_, err := svc.SendMessage(context.Background(), tc.in, tc.actor)
			require.ErrorIs(t, err, tc.want)
			require.Empty(t, repo.messages)
		})
	}
}

func TestSendMessage_RateLimitedPerSender(t *testing.T) {
	repo := &stubChatRepo{}
	svc := newTestChatService(repo, &stubRateLimitRepo{}, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.SendMessage(ctx, SendMessageInput{SenderEmail: "a@x.com", Message: "hi"}, nil)
		require.NoError(t, err)
	}
	_, err := svc.SendMessage(ctx, SendMessageInput{SenderEmail: "a@x.com", Message: "hi"}, nil)
	require.ErrorIs(t, err, apperrors.ErrRateLimited)

	_, err = svc.SendMessage(ctx, SendMessageInput{SenderEmail: "b@x.com", Message: "hi"}, nil)
	require.NoError(t, err)
	require.Len(t, repo.messages, 3)
}

func TestSendMessage_RateLimitBackendError(t *testing.T) {
	svc := newTestChatService(&stubChatRepo{}, &stubRateLimitRepo{err: errStorage}, 2)

	_, err := svc.SendMessage(context.Background(), SendMessageInput{SenderEmail: "a@x.com", Message: "hi"}, nil)
	require.ErrorIs(t, err, errStorage)
}

func TestSendMessage_StorageError(t *testing.T) {
	svc := newTestChatService(&stubChatRepo{createErr: errStorage}, &stubRateLimitRepo{}, 2)

	_, err := svc.SendMessage(context.Background(), SendMessageInput{SenderEmail: "a@x.com", Message: "hi"}, nil)
	require.ErrorIs(t, err, errStorage)
}

func TestTranscriptAndConversations_UseFreshSnapshot(t *testing.T) {
	repo := &stubChatRepo{}
	svc := newTestChatService(repo, &stubRateLimitRepo{}, 10)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, SendMessageInput{SenderEmail: "a@x.com", Message: "hi"}, nil)
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, SendMessageInput{ConversationWith: "a@x.com", Message: "hello", IsAdmin: true}, adminClaims())
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, SendMessageInput{SenderEmail: "b@x.com", Message: "yo"}, nil)
	require.NoError(t, err)

	transcript, err := svc.Transcript(ctx, " A@x.com")
	require.NoError(t, err)
	require.Len(t, transcript, 2)
	require.Equal(t, "hi", transcript[0].Message)
	require.Equal(t, "hello", transcript[1].Message)
	require.Equal(t, 500, repo.lastLimit)

	index, err := svc.Conversations(ctx)
	require.NoError(t, err)
	require.Len(t, index, 2)
	require.Equal(t, "b@x.com", index[0].CounterpartyEmail)
	require.Equal(t, "a@x.com", index[1].CounterpartyEmail)

	// новое сообщение сразу видно: журнал перечитывается при каждом вызове
	_, err = svc.SendMessage(ctx, SendMessageInput{SenderEmail: "a@x.com", Message: "again"}, nil)
	require.NoError(t, err)
	index, err = svc.Conversations(ctx)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", index[0].CounterpartyEmail)
}

func TestTranscript_RejectsInvalidViewer(t *testing.T) {
	svc := newTestChatService(&stubChatRepo{}, &stubRateLimitRepo{}, 10)

	_, err := svc.Transcript(context.Background(), "  ")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Transcript(context.Background(), "OWNER@shop.test")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestTranscript_UnknownViewerIsEmpty(t *testing.T) {
	repo := &stubChatRepo{messages: []domain.ChatMessage{
		{SenderEmail: "a@x.com", ConversationWith: adminEmail, Message: "hi", Timestamp: time.Now()},
	}}
	svc := newTestChatService(repo, &stubRateLimitRepo{}, 10)

	transcript, err := svc.Transcript(context.Background(), "c@x.com")
	require.NoError(t, err)
	require.Empty(t, transcript)
}

func TestConversations_StorageError(t *testing.T) {
	svc := newTestChatService(&stubChatRepo{listErr: errStorage}, &stubRateLimitRepo{}, 10)

	_, err := svc.Conversations(context.Background())
	require.ErrorIs(t, err, errStorage)
	_, err = svc.ListMessages(context.Background())
	require.ErrorIs(t, err, errStorage)
}
