package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one immutable entry of the buyer–admin chat log.
// Exactly one side of {SenderEmail, ConversationWith} is the admin identity.
type ChatMessage struct {
	ID               uuid.UUID `json:"id"`
	SenderEmail      string    `json:"sender_email"`
	ConversationWith string    `json:"conversation_with"`
	Message          string    `json:"message"`
	Timestamp        time.Time `json:"timestamp"`
	IsAdmin          bool      `json:"is_admin"`
}

// ConversationSummary is derived from the log on demand and never stored.
type ConversationSummary struct {
	CounterpartyEmail string        `json:"counterparty_email"`
	Messages          []ChatMessage `json:"messages"`
	LastMessage       ChatMessage   `json:"last_message"`
}
