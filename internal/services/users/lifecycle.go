package users

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ongood/metabase-sub001/internal/auth"
	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/ongood/metabase-sub001/internal/repository"
	"github.com/ongood/metabase-sub001/internal/telemetry"
)

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = 48 * time.Hour

func (s *service) Create(ctx context.Context, input CreateInput) (*models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.TracerUsers, "users.Create",
		attribute.Bool(telemetry.AttrUserSuperuser, input.IsSuperuser),
	)
	defer span.End()

	if err := checkCredentialInput("create user", input.Password, input.PasswordSalt); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.validate(&input.Email, input.Password, input.Locale); err != nil {
		telemetry.AddEvent(span, "validation.failed", attribute.String("reason", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	user := applyDefaults(input, now)
	norm, err := s.normalize(&input.Email, input.Locale, input.Password, input.ResetToken, input.Settings, now)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	norm.apply(user)

	err = s.repos.RunInTx(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		return s.persistNew(ctx, tx, user)
	})
	if err := txError(err); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64(telemetry.AttrUserID, user.ID))
	return user, nil
}

// persistNew inserts the user, its system memberships and its personal collection.
func (s *service) persistNew(ctx context.Context, tx *repository.Repositories, user *models.User) error {
	if err := tx.Users.Create(ctx, user); err != nil {
		return err
	}

	if err := tx.Memberships.Create(ctx, &models.PermissionsGroupMembership{
		UserID:  user.ID,
		GroupID: s.groups.AllUsersGroupID(),
	}); err != nil {
		return fmt.Errorf("add All Users membership: %w", err)
	}

	if user.IsSuperuser {
		if err := tx.Memberships.Create(ctx, &models.PermissionsGroupMembership{
			UserID:  user.ID,
			GroupID: s.groups.AdminGroupID(),
		}); err != nil {
			return fmt.Errorf("add Administrators membership: %w", err)
		}
	}

	personal := &models.Collection{
		Name:            personalCollectionName(user),
		Location:        models.RootLocation,
		PersonalOwnerID: &user.ID,
	}
	if err := tx.Collections.Create(ctx, personal); err != nil {
		return fmt.Errorf("create personal collection: %w", err)
	}
	return nil
}

func (s *service) CreateAndInvite(ctx context.Context, input CreateInput, invitor *models.User, fromSetup bool) (*CreateResult, error) {
	user, err := s.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &CreateResult{User: user}
	if s.notifier != nil {
		if err := s.notifier.SendWelcomeEmail(ctx, user, invitor, fromSetup); err != nil {
			log.Printf("WARN: welcome email for user %d not sent: %v", user.ID, err)
			result.NotifyErr = err
		}
	}
	return result, nil
}

func (s *service) CreateSSOUser(ctx context.Context, input CreateInput, ssoSource string) (*CreateResult, error) {
	if ssoSource == "" {
		return nil, invalid("sso_source", "is required")
	}
	if input.Password != nil {
		return nil, invalid("password", "accounts provisioned by single sign-on have no password")
	}
	input.SSOSource = &ssoSource

	user, err := s.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &CreateResult{User: user}
	if s.notifier != nil {
		if err := s.notifier.SendAdminJoinedNotification(ctx, user, ssoSource == "google"); err != nil {
			log.Printf("WARN: admin notification for user %d not sent: %v", user.ID, err)
			result.NotifyErr = err
		}
	}
	return result, nil
}

type updateOptions struct {
	clearResetToken bool
}

func (s *service) Update(ctx context.Context, id int64, patch Patch) (*models.User, error) {
	return s.update(ctx, "users.Update", id, patch, updateOptions{})
}

func (s *service) update(ctx context.Context, spanName string, id int64, patch Patch, opts updateOptions) (*models.User, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.TracerUsers, spanName,
		attribute.Int64(telemetry.AttrUserID, id),
	)
	defer span.End()

	if err := checkCredentialInput("update user", patch.Password, patch.PasswordSalt); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.validate(patch.Email, patch.Password, patch.Locale); err != nil {
		telemetry.AddEvent(span, "validation.failed", attribute.String("reason", err.Error()))
		return nil, err
	}

	norm, err := s.normalize(patch.Email, patch.Locale, patch.Password, patch.ResetToken, patch.Settings, time.Now().UTC())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var user *models.User
	err = s.repos.RunInTx(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		current, err := tx.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.IsSuperuser != nil {
			if _, err := s.syncAdminMembership(ctx, tx, id, *patch.IsSuperuser); err != nil {
				return err
			}
			current.IsSuperuser = *patch.IsSuperuser
		}

		if patch.IsActive != nil {
			if current.IsActive && !*patch.IsActive {
				if err := tx.Subscriptions.DeleteSubscriptionsForUser(ctx, id); err != nil {
					return err
				}
			}
			current.IsActive = *patch.IsActive
		}

		applyPatch(current, patch)
		norm.apply(current)
		if opts.clearResetToken {
			current.ResetToken = nil
			current.ResetTriggered = nil
		}

		if norm.credentialChanged() {
			if err := tx.Sessions.InvalidateAllSessions(ctx, id); err != nil {
				return err
			}
		}

		if err := tx.Users.Update(ctx, current); err != nil {
			return err
		}
		user = current
		return nil
	})
	if err := txError(err); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return user, nil
}

// syncAdminMembership makes Administrators membership match isSuperuser.
// It is a no-op when they already agree.
func (s *service) syncAdminMembership(ctx context.Context, tx *repository.Repositories, userID int64, isSuperuser bool) (bool, error) {
	adminID := s.groups.AdminGroupID()
	member, err := tx.Memberships.Exists(ctx, userID, adminID)
	if err != nil {
		return false, err
	}

	switch {
	case isSuperuser && !member:
		err = tx.Memberships.Create(ctx, &models.PermissionsGroupMembership{UserID: userID, GroupID: adminID})
	case !isSuperuser && member:
		_, err = tx.Memberships.DeleteForUser(ctx, userID, []int64{adminID})
	default:
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sync Administrators membership: %w", err)
	}
	return true, nil
}

func (s *service) SetPassword(ctx context.Context, id int64, plaintext string) error {
	_, err := s.update(ctx, "users.SetPassword", id, Patch{Password: &plaintext}, updateOptions{clearResetToken: true})
	return err
}

func (s *service) CreateResetToken(ctx context.Context, id int64) (string, error) {
	token := auth.NewResetToken(id)
	if _, err := s.update(ctx, "users.CreateResetToken", id, Patch{ResetToken: &token}, updateOptions{}); err != nil {
		return "", err
	}
	return token, nil
}

func (s *service) ValidResetToken(ctx context.Context, id int64, token string) (bool, error) {
	if owner, ok := auth.ResetTokenUserID(token); !ok || owner != id {
		return false, nil
	}
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if user.ResetToken == nil || user.ResetTriggered == nil {
		return false, nil
	}
	if time.Since(*user.ResetTriggered) > ResetTokenTTL {
		return false, nil
	}
	return auth.VerifyResetToken(*user.ResetToken, token), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repos.Users.GetByID(ctx, id)
}

// GetByEmail looks a user up case-insensitively.
func (s *service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repos.Users.GetByEmail(ctx, strings.TrimSpace(email))
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]models.User, error) {
	return s.repos.Users.List(ctx, includeInactive)
}

func (s *service) Settings(user *models.User) (map[string]any, error) {
	settings := map[string]any{}
	if user == nil || user.Settings == nil || *user.Settings == "" {
		return settings, nil
	}

	raw, err := s.secrets.Open(*user.Settings)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}
