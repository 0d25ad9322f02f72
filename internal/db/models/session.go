package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Session tracks an active login session for a user
type Session struct {
	bun.BaseModel `bun:"table:core_session,alias:sess"`

	ID         string    `bun:"id,pk"`                     // UUIDv7
	UserID     int64     `bun:"user_id,notnull"`           // FK to core_user(id)
	TokenHash  string    `bun:"token_hash,notnull,unique"` // SHA256 hash of the session token
	ExpiresAt  time.Time `bun:"expires_at,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
	LastUsedAt time.Time `bun:"last_used_at,notnull,default:current_timestamp"`
	UserAgent  *string   `bun:"user_agent"`
}
