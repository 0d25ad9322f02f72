package models

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// InstallerUserID is the id of the first account, created by the setup flow.
const InstallerUserID int64 = 1

// User represents a human account.
// PasswordHash and ResetToken only ever hold bcrypt digests.
type User struct {
	bun.BaseModel `bun:"table:core_user,alias:u"`

	ID              int64          `bun:"id,pk,autoincrement"`
	Email           string         `bun:"email,notnull,unique"` // always lower-case
	FirstName       *string        `bun:"first_name"`
	LastName        *string        `bun:"last_name"`
	PasswordHash    *string        `bun:"password"`
	PasswordSalt    *string        `bun:"password_salt"`
	IsActive        bool           `bun:"is_active,notnull,default:true"`
	IsSuperuser     bool           `bun:"is_superuser,notnull,default:false"`
	ResetToken      *string        `bun:"reset_token"`
	ResetTriggered  *time.Time     `bun:"reset_triggered"`
	Locale          *string        `bun:"locale"`
	SSOSource       *string        `bun:"sso_source"` // e.g. "google", "ldap"
	LoginAttributes map[string]any `bun:"login_attributes,type:jsonb"`
	Settings        *string        `bun:"settings,type:text"` // encrypted JSON blob
	DateJoined      time.Time      `bun:"date_joined,notnull,default:current_timestamp"`
	LastLogin       *time.Time     `bun:"last_login"`
	UpdatedAt       time.Time      `bun:"updated_at,notnull,default:current_timestamp"`

	// Derived at load time.
	CommonName string `bun:"-"`

	// Attached by the batch hydrator.
	GroupMemberships     []GroupMembershipRef `bun:"-"`
	GroupIDs             []int64              `bun:"-"`
	HasInvitedSecondUser bool                 `bun:"-"`
	IsInstaller          bool                 `bun:"-"`
}

// GroupMembershipRef is the hydrated view of a membership edge.
// IsGroupManager is nil unless advanced permissions are enabled.
type GroupMembershipRef struct {
	ID             int64
	IsGroupManager *bool
}

var _ bun.AfterScanRowHook = (*User)(nil)

// AfterScanRow computes CommonName after a row is loaded.
func (u *User) AfterScanRow(ctx context.Context) error {
	u.CommonName = CommonName(u.FirstName, u.LastName, u.Email)
	return nil
}

// CommonName joins first and last name, falling back to email when both are absent.
func CommonName(firstName, lastName *string, email string) string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{firstName, lastName} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	if len(parts) == 0 {
		return email
	}
	return strings.Join(parts, " ")
}

// HasPassword reports whether the account has local credentials.
func (u *User) HasPassword() bool {
	return u != nil && u.PasswordHash != nil && *u.PasswordHash != ""
}
