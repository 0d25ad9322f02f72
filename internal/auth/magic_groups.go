package auth

import (
	"context"
	"fmt"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/ongood/metabase-sub001/internal/repository"
)

// MagicGroups resolves the two system groups every deployment carries.
type MagicGroups struct {
	allUsers int64
	admin    int64
}

// NewMagicGroups builds a provider from known ids.
func NewMagicGroups(allUsersID, adminID int64) *MagicGroups {
	return &MagicGroups{allUsers: allUsersID, admin: adminID}
}

// LoadMagicGroups looks up the seeded All Users and Administrators groups by name.
// Both are created by migrations; a missing group means the schema is not migrated.
func LoadMagicGroups(ctx context.Context, groups repository.GroupRepository) (*MagicGroups, error) {
	allUsers, err := groups.GetByName(ctx, models.AllUsersGroupName)
	if err != nil {
		return nil, fmt.Errorf("resolve %q group (run migrations?): %w", models.AllUsersGroupName, err)
	}
	admin, err := groups.GetByName(ctx, models.AdminGroupName)
	if err != nil {
		return nil, fmt.Errorf("resolve %q group (run migrations?): %w", models.AdminGroupName, err)
	}
	return NewMagicGroups(allUsers.ID, admin.ID), nil
}

// AllUsersGroupID returns the id of the group every user belongs to.
func (m *MagicGroups) AllUsersGroupID() int64 { return m.allUsers }

// AdminGroupID returns the id of the group mirrored by the superuser flag.
func (m *MagicGroups) AdminGroupID() int64 { return m.admin }

// IsMagic reports whether groupID is one of the system groups.
func (m *MagicGroups) IsMagic(groupID int64) bool {
	return groupID == m.allUsers || groupID == m.admin
}
