package domain

import (
	"time"
)

type AuditLog struct {
	ID         int64                  `json:"id"`
	EventTime  time.Time              `json:"event_time"`
	ActorEmail *string                `json:"actor_email,omitempty"`
	ActorRole  string                 `json:"actor_role"`
	EventType  string                 `json:"event_type"`
	Payload    map[string]interface{} `json:"payload"`
}

const (
	ActorRoleBuyer  = "buyer"
	ActorRoleAdmin  = "admin"
	ActorRoleSystem = "system"
)

const (
	EventTypeAccountCreated      = "ACCOUNT_CREATED"
	EventTypeAccountDeleted      = "ACCOUNT_DELETED"
	EventTypeAdminVerified       = "ADMIN_VERIFIED"
	EventTypeAdminVerifyRejected = "ADMIN_VERIFY_REJECTED"
)
