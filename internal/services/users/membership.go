package users

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/ongood/metabase-sub001/internal/repository"
	"github.com/ongood/metabase-sub001/internal/telemetry"
)

func (s *service) SetGroups(ctx context.Context, userID int64, desired []int64, opts SetGroupsOptions) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.TracerUsers, "users.SetGroups",
		attribute.Int64(telemetry.AttrUserID, userID),
	)
	defer span.End()

	var changed bool
	err := s.repos.RunInTx(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		if _, err := tx.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		current, err := tx.Memberships.GroupIDsForUser(ctx, userID)
		if err != nil {
			return err
		}

		toRemove, toAdd := diffGroups(current, desired)
		span.SetAttributes(
			attribute.Int(telemetry.AttrGroupsRemoved, len(toRemove)),
			attribute.Int(telemetry.AttrGroupsAdded, len(toAdd)),
		)
		if len(toRemove) == 0 && len(toAdd) == 0 {
			return nil
		}

		if contains(toRemove, s.groups.AllUsersGroupID()) && !opts.AllowSystemMembershipEdits {
			return invalid("groups", "every user must remain a member of the All Users group")
		}

		if len(toRemove) > 0 {
			if _, err := tx.Memberships.DeleteForUser(ctx, userID, toRemove); err != nil {
				return err
			}
		}
		// One insert per edge so a failing group id is reported on its own.
		for _, groupID := range toAdd {
			if err := tx.Memberships.Create(ctx, &models.PermissionsGroupMembership{
				UserID:  userID,
				GroupID: groupID,
			}); err != nil {
				return fmt.Errorf("add membership in group %d: %w", groupID, err)
			}
		}

		// Administrators membership drives the superuser flag in this direction too.
		adminID := s.groups.AdminGroupID()
		switch {
		case contains(toAdd, adminID):
			err = tx.Users.SetSuperuser(ctx, userID, true)
		case contains(toRemove, adminID):
			err = tx.Users.SetSuperuser(ctx, userID, false)
		}
		if err != nil {
			return err
		}

		changed = true
		return nil
	})
	if err := txError(err); err != nil {
		telemetry.RecordError(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool(telemetry.AttrMembershipDirty, changed))
	return changed, nil
}

// diffGroups returns current \ desired and desired \ current, each sorted
// and free of duplicates.
func diffGroups(current, desired []int64) (toRemove, toAdd []int64) {
	currentSet := toSet(current)
	desiredSet := toSet(desired)

	for id := range currentSet {
		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	for id := range desiredSet {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	sort.Slice(toRemove, func(i, j int) bool { return toRemove[i] < toRemove[j] })
	sort.Slice(toAdd, func(i, j int) bool { return toAdd[i] < toAdd[j] })
	return toRemove, toAdd
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s *service) GroupMemberships(ctx context.Context, userID int64) ([]models.GroupMembershipRef, error) {
	memberships, err := s.repos.Memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.membershipRefs(memberships), nil
}

// membershipRefs converts edges to their hydrated view. IsGroupManager is
// only reported when advanced permissions are enabled.
func (s *service) membershipRefs(memberships []models.PermissionsGroupMembership) []models.GroupMembershipRef {
	advanced := s.features.AdvancedPermissionsEnabled()
	refs := make([]models.GroupMembershipRef, 0, len(memberships))
	for _, m := range memberships {
		ref := models.GroupMembershipRef{ID: m.GroupID}
		if advanced {
			manager := m.IsGroupManager
			ref.IsGroupManager = &manager
		}
		refs = append(refs, ref)
	}
	return refs
}

func (s *service) CreateGroup(ctx context.Context, name string) (*models.PermissionsGroup, error) {
	if name == "" {
		return nil, invalid("name", "is required")
	}
	group := &models.PermissionsGroup{Name: name}
	if err := s.repos.Groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *service) ListGroups(ctx context.Context) ([]models.PermissionsGroup, error) {
	return s.repos.Groups.List(ctx)
}

func (s *service) GrantPermission(ctx context.Context, groupID int64, object string) error {
	if err := s.checkGrant(ctx, groupID, object); err != nil {
		return err
	}
	return s.repos.Permissions.Grant(ctx, groupID, object)
}

func (s *service) RevokePermission(ctx context.Context, groupID int64, object string) error {
	if err := s.checkGrant(ctx, groupID, object); err != nil {
		return err
	}
	return s.repos.Permissions.Revoke(ctx, groupID, object)
}

func (s *service) GroupPermissions(ctx context.Context, groupID int64) ([]string, error) {
	if _, err := s.repos.Groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	perms, err := s.repos.Permissions.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	objects := make([]string, len(perms))
	for i, p := range perms {
		objects[i] = p.Object
	}
	return objects, nil
}

// checkGrant validates the object path and that the group exists.
func (s *service) checkGrant(ctx context.Context, groupID int64, object string) error {
	if object == "" || object[0] != '/' || object[len(object)-1] != '/' {
		return invalid("object", fmt.Sprintf("%q must be a path like /collection/1/", object))
	}
	_, err := s.repos.Groups.GetByID(ctx, groupID)
	return err
}
