package users

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ongood/metabase-sub001/internal/auth"
	"github.com/ongood/metabase-sub001/internal/db/models"
)

// The create/update pipeline steps, in the order they run.

// checkCredentialInput rejects a plaintext password that arrives with a salt.
func checkCredentialInput(op string, password, salt *string) error {
	if err := auth.CheckCredentialInput(password, salt); err != nil {
		return invariantViolation(op, err)
	}
	return nil
}

// validate checks the fields that are present. email is required on create
// and passed as nil on updates that do not touch it.
func (s *service) validate(email, password, locale *string) error {
	if email != nil {
		if err := validateEmail(*email); err != nil {
			return err
		}
	}
	if password != nil && strings.TrimSpace(*password) == "" {
		return invalid("password", "must not be blank")
	}
	if locale != nil && !s.locales.IsRecognizedLocale(*locale) {
		return invalid("locale", fmt.Sprintf("%q is not a recognized locale", *locale))
	}
	return nil
}

func validateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return invalid("email", fmt.Sprintf("%q is not a valid email address", email))
	}
	domain := trimmed[strings.LastIndex(trimmed, "@")+1:]
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return invalid("email", fmt.Sprintf("%q is not a valid email address", email))
	}
	return nil
}

// applyDefaults builds the record a create starts from.
func applyDefaults(input CreateInput, now time.Time) *models.User {
	user := &models.User{
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		IsActive:        true,
		IsSuperuser:     input.IsSuperuser,
		SSOSource:       input.SSOSource,
		LoginAttributes: input.LoginAttributes,
		DateJoined:      now,
		LastLogin:       nil,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	return user
}

// normalized is the write-ready form of the fields that need transforming.
// Nil fields were absent from the input and leave the record untouched.
type normalized struct {
	email          *string
	locale         *string
	passwordSalt   *string
	passwordHash   *string
	resetToken     *string
	resetTriggered *time.Time
	settings       *string
}

// normalize lower-cases the email, canonicalizes the locale, hashes the
// password and reset token and seals the settings.
func (s *service) normalize(email, locale, password, resetToken *string, settings map[string]any, now time.Time) (*normalized, error) {
	n := &normalized{}

	if email != nil {
		lower := strings.ToLower(strings.TrimSpace(*email))
		n.email = &lower
	}
	if locale != nil {
		canonical := s.locales.Canonicalize(*locale)
		n.locale = &canonical
	}
	if password != nil {
		salt, hash, err := auth.HashCredential(*password)
		if err != nil {
			return nil, err
		}
		n.passwordSalt, n.passwordHash = &salt, &hash
	}
	if resetToken != nil {
		hash, err := auth.HashResetToken(*resetToken)
		if err != nil {
			return nil, err
		}
		n.resetToken = &hash
		n.resetTriggered = &now
	}
	if settings != nil {
		raw, err := json.Marshal(settings)
		if err != nil {
			return nil, invalid("settings", err.Error())
		}
		sealed, err := s.secrets.Seal(string(raw))
		if err != nil {
			return nil, fmt.Errorf("seal settings: %w", err)
		}
		n.settings = &sealed
	}
	return n, nil
}

func (n *normalized) credentialChanged() bool {
	return n.passwordHash != nil
}

func (n *normalized) apply(user *models.User) {
	if n.email != nil {
		user.Email = *n.email
	}
	if n.locale != nil {
		user.Locale = n.locale
	}
	if n.passwordHash != nil {
		user.PasswordSalt = n.passwordSalt
		user.PasswordHash = n.passwordHash
	}
	if n.resetToken != nil {
		user.ResetToken = n.resetToken
		user.ResetTriggered = n.resetTriggered
	}
	if n.settings != nil {
		user.Settings = n.settings
	}
	user.CommonName = models.CommonName(user.FirstName, user.LastName, user.Email)
}

// applyPatch copies the pass-through fields of a patch.
func applyPatch(user *models.User, patch Patch) {
	if patch.FirstName != nil {
		user.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = patch.LastName
	}
	if patch.SSOSource != nil {
		user.SSOSource = patch.SSOSource
	}
	if patch.LoginAttributes != nil {
		user.LoginAttributes = patch.LoginAttributes
	}
}

func personalCollectionName(user *models.User) string {
	return fmt.Sprintf("%s's Personal Collection", user.CommonName)
}
