package users

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/ongood/metabase-sub001/internal/telemetry"
)

// HydrateField names a derived field Hydrate can attach.
type HydrateField string

const (
	FieldGroupMemberships     HydrateField = "group_memberships"
	FieldGroupIDs             HydrateField = "group_ids"
	FieldHasInvitedSecondUser HydrateField = "has_invited_second_user"
	FieldIsInstaller          HydrateField = "is_installer"
)

// AllHydrateFields lists every field Hydrate supports.
var AllHydrateFields = []HydrateField{
	FieldGroupMemberships,
	FieldGroupIDs,
	FieldHasInvitedSecondUser,
	FieldIsInstaller,
}

// Hydrate issues at most one query per requested field, independent of the
// number of users: memberships, group ids, and a user count that only runs
// when the installer is in the batch.
func (s *service) Hydrate(ctx context.Context, users []*models.User, fields ...HydrateField) ([]*models.User, error) {
	if len(users) == 0 {
		return users, nil
	}
	if len(fields) == 0 {
		fields = AllHydrateFields
	}
	want := make(map[HydrateField]bool, len(fields))
	for _, f := range fields {
		want[f] = true
	}

	ctx, span := telemetry.StartSpan(ctx, telemetry.TracerUsers, "users.Hydrate",
		attribute.Int(telemetry.AttrUserCount, len(users)),
	)
	defer span.End()

	ids := make([]int64, 0, len(users))
	seen := make(map[int64]struct{}, len(users))
	for _, u := range users {
		if _, ok := seen[u.ID]; !ok {
			seen[u.ID] = struct{}{}
			ids = append(ids, u.ID)
		}
	}

	if want[FieldGroupMemberships] {
		memberships, err := s.repos.Memberships.ListByUsers(ctx, ids)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		byUser := make(map[int64][]models.PermissionsGroupMembership, len(ids))
		for _, m := range memberships {
			byUser[m.UserID] = append(byUser[m.UserID], m)
		}
		for _, u := range users {
			u.GroupMemberships = s.membershipRefs(byUser[u.ID])
		}
	}

	if want[FieldGroupIDs] {
		byUser, err := s.repos.Memberships.GroupIDsForUsers(ctx, ids)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		for _, u := range users {
			groupIDs := byUser[u.ID]
			if groupIDs == nil {
				groupIDs = []int64{}
			}
			u.GroupIDs = groupIDs
		}
	}

	if want[FieldIsInstaller] {
		for _, u := range users {
			u.IsInstaller = u.ID == models.InstallerUserID
		}
	}

	if want[FieldHasInvitedSecondUser] {
		var count int
		if _, ok := seen[models.InstallerUserID]; ok {
			var err error
			if count, err = s.repos.Users.Count(ctx); err != nil {
				telemetry.RecordError(span, err)
				return nil, err
			}
		}
		for _, u := range users {
			u.HasInvitedSecondUser = u.ID == models.InstallerUserID && count > 1
		}
	}

	return users, nil
}
