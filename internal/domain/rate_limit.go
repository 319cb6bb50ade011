package domain

import (
	"time"
)

// RateLimitRule: окно фиксированной длины с лимитом запросов на ключ.
type RateLimitRule struct {
	Scope  string
	Limit  int
	Window time.Duration
}

const (
	RateLimitScopeGlobal = "global"
	RateLimitScopeIP     = "ip"
	RateLimitScopeSender = "sender"
	RateLimitScopeVerify = "verify"
)

// Key строит ключ Redis для правила и субъекта (IP, e-mail отправителя).
func (r RateLimitRule) Key(subject string) string {
	return "ratelimit:" + r.Scope + ":" + subject
}
