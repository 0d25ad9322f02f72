package repository

import (
	"context"

	"github.com/ongood/metabase-sub001/internal/db/models"
)

// UserRepository exposes persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetSuperuser(ctx context.Context, id int64, isSuperuser bool) error
	List(ctx context.Context, includeInactive bool) ([]models.User, error)
	ListActiveSuperusers(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
}

// GroupRepository exposes persistence operations for permission groups.
type GroupRepository interface {
	Create(ctx context.Context, group *models.PermissionsGroup) error
	GetByID(ctx context.Context, id int64) (*models.PermissionsGroup, error)
	GetByName(ctx context.Context, name string) (*models.PermissionsGroup, error)
	List(ctx context.Context) ([]models.PermissionsGroup, error)
}

// MembershipRepository exposes persistence operations for user↔group edges.
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.PermissionsGroupMembership) error
	Exists(ctx context.Context, userID, groupID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]models.PermissionsGroupMembership, error)
	ListByUsers(ctx context.Context, userIDs []int64) ([]models.PermissionsGroupMembership, error)
	GroupIDsForUser(ctx context.Context, userID int64) ([]int64, error)
	GroupIDsForUsers(ctx context.Context, userIDs []int64) (map[int64][]int64, error)
	DeleteForUser(ctx context.Context, userID int64, groupIDs []int64) (int64, error)
}

// PermissionRepository exposes the group → object path grants.
type PermissionRepository interface {
	Grant(ctx context.Context, groupID int64, object string) error
	Revoke(ctx context.Context, groupID int64, object string) error
	ListByGroup(ctx context.Context, groupID int64) ([]models.Permission, error)
	// ObjectsForUser joins memberships to grants for every group the user is in.
	ObjectsForUser(ctx context.Context, userID int64) ([]string, error)
}

// CollectionRepository exposes persistence operations for namespaces.
type CollectionRepository interface {
	Create(ctx context.Context, collection *models.Collection) error
	GetPersonal(ctx context.Context, userID int64) (*models.Collection, error)
	// PersonalNamespaceIDs returns the user's personal collection and all of its descendants.
	PersonalNamespaceIDs(ctx context.Context, userID int64) ([]int64, error)
}

// SubscriptionRepository is the notification-preferences store.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.NotificationSubscription) error
	ListByUser(ctx context.Context, userID int64) ([]models.NotificationSubscription, error)
	DeleteSubscriptionsForUser(ctx context.Context, userID int64) error
}

// SessionRepository is the session store.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByUserID(ctx context.Context, userID int64) ([]models.Session, error)
	InvalidateAllSessions(ctx context.Context, userID int64) error
}
