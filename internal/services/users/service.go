package users

import (
	"context"
	"fmt"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/ongood/metabase-sub001/internal/notify"
	"github.com/ongood/metabase-sub001/internal/repository"
	"github.com/ongood/metabase-sub001/internal/secret"
)

// Service provides account lifecycle, membership and permission operations.
type Service interface {
	// =========================================================================
	// Lifecycle
	// =========================================================================

	// Create validates, normalizes and inserts a user together with its All
	// Users membership, its Administrators membership when IsSuperuser is set,
	// and its personal collection, in one transaction.
	Create(ctx context.Context, input CreateInput) (*models.User, error)

	// CreateAndInvite runs Create and then sends a best-effort welcome email.
	// invitor is nil for self sign-up; fromSetup marks the installer account.
	CreateAndInvite(ctx context.Context, input CreateInput, invitor *models.User, fromSetup bool) (*CreateResult, error)

	// CreateSSOUser runs Create for an account provisioned by an SSO provider
	// and notifies administrators. Such accounts carry no password.
	CreateSSOUser(ctx context.Context, input CreateInput, ssoSource string) (*CreateResult, error)

	// Update applies a partial change. Validation runs before any write; the
	// superuser flag and Administrators membership commit together.
	Update(ctx context.Context, id int64, patch Patch) (*models.User, error)

	// SetPassword replaces the credential, clears any reset token and
	// invalidates every session of the user.
	SetPassword(ctx context.Context, id int64, plaintext string) error

	// CreateResetToken stores a hashed reset token and returns the plaintext.
	CreateResetToken(ctx context.Context, id int64) (string, error)

	// ValidResetToken reports whether token is the user's current, unexpired reset token.
	ValidResetToken(ctx context.Context, id int64, token string) (bool, error)

	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, includeInactive bool) ([]models.User, error)

	// Settings decrypts the user's settings blob.
	Settings(user *models.User) (map[string]any, error)

	// =========================================================================
	// Membership
	// =========================================================================

	// SetGroups moves the user's membership to exactly desired and reports
	// whether anything changed. Equal sets issue no writes.
	SetGroups(ctx context.Context, userID int64, desired []int64, opts SetGroupsOptions) (bool, error)

	// GroupMemberships is the single-user membership lookup.
	GroupMemberships(ctx context.Context, userID int64) ([]models.GroupMembershipRef, error)

	CreateGroup(ctx context.Context, name string) (*models.PermissionsGroup, error)
	ListGroups(ctx context.Context) ([]models.PermissionsGroup, error)
	GrantPermission(ctx context.Context, groupID int64, object string) error
	// RevokePermission removes a grant. Revoking a path the group does not
	// hold is a no-op.
	RevokePermission(ctx context.Context, groupID int64, object string) error
	// GroupPermissions lists the object paths granted to a group, sorted.
	GroupPermissions(ctx context.Context, groupID int64) ([]string, error)

	// =========================================================================
	// Reads
	// =========================================================================

	// PermissionSet returns every object path the user can reach.
	PermissionSet(ctx context.Context, userID int64) (PathSet, error)

	// Hydrate attaches derived fields to already loaded users in place and
	// returns them in input order. No fields means all fields.
	Hydrate(ctx context.Context, users []*models.User, fields ...HydrateField) ([]*models.User, error)
}

// MagicGroupProvider resolves the system groups.
type MagicGroupProvider interface {
	AllUsersGroupID() int64
	AdminGroupID() int64
}

// LocaleValidator recognizes and canonicalizes locale identifiers.
type LocaleValidator interface {
	IsRecognizedLocale(code string) bool
	Canonicalize(code string) string
}

// FeatureFlags exposes the capabilities this package branches on.
type FeatureFlags interface {
	AdvancedPermissionsEnabled() bool
}

// Dependencies contains all collaborators for service construction.
type Dependencies struct {
	Repos    *repository.Repositories
	Groups   MagicGroupProvider
	Locales  LocaleValidator
	Features FeatureFlags
	Secrets  *secret.Box
	Notifier notify.Notifier // optional
}

type service struct {
	repos    *repository.Repositories
	groups   MagicGroupProvider
	locales  LocaleValidator
	features FeatureFlags
	secrets  *secret.Box
	notifier notify.Notifier
}

var _ Service = (*service)(nil)

// New creates the users service.
func New(deps Dependencies) (Service, error) {
	if deps.Repos == nil {
		return nil, fmt.Errorf("users: repositories are required")
	}
	if deps.Groups == nil {
		return nil, fmt.Errorf("users: magic group provider is required")
	}
	if deps.Locales == nil {
		return nil, fmt.Errorf("users: locale validator is required")
	}
	if deps.Features == nil {
		return nil, fmt.Errorf("users: feature flags are required")
	}

	svc := &service{
		repos:    deps.Repos,
		groups:   deps.Groups,
		locales:  deps.Locales,
		features: deps.Features,
		secrets:  deps.Secrets,
		notifier: deps.Notifier,
	}
	if svc.secrets == nil {
		svc.secrets = &secret.Box{}
	}

	return svc, nil
}
