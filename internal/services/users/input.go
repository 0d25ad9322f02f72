package users

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/ongood/metabase-sub001/internal/db/models"
)

// CreateInput describes a new account.
type CreateInput struct {
	Email     string
	FirstName *string
	LastName  *string

	// Password is the plaintext credential, hashed before any write.
	Password *string
	// PasswordSalt must stay nil. A salt next to a plaintext password means
	// the caller tried to store a value that was not hashed here.
	PasswordSalt *string

	IsActive        *bool // defaults to true
	IsSuperuser     bool
	Locale          *string
	ResetToken      *string
	SSOSource       *string
	LoginAttributes map[string]any
	Settings        map[string]any
}

// CreateResult is returned by the create paths that notify after commit.
// NotifyErr is set when the user was created but the notification failed.
type CreateResult struct {
	User      *models.User
	NotifyErr error
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Email           *string        `mapstructure:"email"`
	FirstName       *string        `mapstructure:"first_name"`
	LastName        *string        `mapstructure:"last_name"`
	Password        *string        `mapstructure:"password"`
	PasswordSalt    *string        `mapstructure:"password_salt"`
	IsActive        *bool          `mapstructure:"is_active"`
	IsSuperuser     *bool          `mapstructure:"is_superuser"`
	Locale          *string        `mapstructure:"locale"`
	ResetToken      *string        `mapstructure:"reset_token"`
	SSOSource       *string        `mapstructure:"sso_source"`
	LoginAttributes map[string]any `mapstructure:"login_attributes"`
	Settings        map[string]any `mapstructure:"settings"`
}

// DecodePatch builds a Patch from loosely typed key/value input such as
// form values or CLI flags ("is_active": "false" becomes a *bool).
// Unknown keys are rejected.
func DecodePatch(values map[string]any) (Patch, error) {
	var patch Patch
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &patch,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       false,
	})
	if err != nil {
		return Patch{}, fmt.Errorf("create patch decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return Patch{}, invalid("patch", err.Error())
	}
	return patch, nil
}

// SetGroupsOptions adjusts SetGroups for callers with elevated needs.
type SetGroupsOptions struct {
	// AllowSystemMembershipEdits permits removing the All Users membership.
	// Only bootstrap and repair tooling should set it.
	AllowSystemMembershipEdits bool
}
