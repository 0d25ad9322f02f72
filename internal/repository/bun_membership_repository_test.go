package repository

import (
	"context"
	"testing"

	"github.com/ongood/metabase-sub001/internal/db/dbtest"
	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBunMembershipRepository(t *testing.T) {
	db := dbtest.New(t)
	repos := New(db)
	ctx := context.Background()

	alice := &models.User{Email: "alice@example.com", IsActive: true}
	bob := &models.User{Email: "bob@example.com", IsActive: true}
	require.NoError(t, repos.Users.Create(ctx, alice))
	require.NoError(t, repos.Users.Create(ctx, bob))

	allUsers, err := repos.Groups.GetByName(ctx, models.AllUsersGroupName)
	require.NoError(t, err)
	team := &models.PermissionsGroup{Name: "Team"}
	require.NoError(t, repos.Groups.Create(ctx, team))

	for _, m := range []*models.PermissionsGroupMembership{
		{UserID: alice.ID, GroupID: allUsers.ID},
		{UserID: alice.ID, GroupID: team.ID, IsGroupManager: true},
		{UserID: bob.ID, GroupID: allUsers.ID},
	} {
		require.NoError(t, repos.Memberships.Create(ctx, m))
	}

	t.Run("duplicate edge", func(t *testing.T) {
		err := repos.Memberships.Create(ctx, &models.PermissionsGroupMembership{UserID: bob.ID, GroupID: allUsers.ID})
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repos.Memberships.Exists(ctx, alice.ID, team.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repos.Memberships.Exists(ctx, bob.ID, team.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list by user", func(t *testing.T) {
		memberships, err := repos.Memberships.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, memberships, 2)
		assert.Equal(t, allUsers.ID, memberships[0].GroupID)
		assert.True(t, memberships[1].IsGroupManager)
	})

	t.Run("bulk lookups", func(t *testing.T) {
		memberships, err := repos.Memberships.ListByUsers(ctx, []int64{alice.ID, bob.ID})
		require.NoError(t, err)
		assert.Len(t, memberships, 3)

		byUser, err := repos.Memberships.GroupIDsForUsers(ctx, []int64{alice.ID, bob.ID, 999})
		require.NoError(t, err)
		assert.Equal(t, []int64{allUsers.ID, team.ID}, byUser[alice.ID])
		assert.Equal(t, []int64{allUsers.ID}, byUser[bob.ID])
		assert.NotContains(t, byUser, int64(999))

		none, err := repos.Memberships.ListByUsers(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("delete for user", func(t *testing.T) {
		removed, err := repos.Memberships.DeleteForUser(ctx, alice.ID, []int64{team.ID, 999})
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		ids, err := repos.Memberships.GroupIDsForUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{allUsers.ID}, ids)
	})
}

func TestBunPermissionRepository_ObjectsForUser(t *testing.T) {
	db := dbtest.New(t)
	repos := New(db)
	ctx := context.Background()

	user := &models.User{Email: "perm@example.com", IsActive: true}
	require.NoError(t, repos.Users.Create(ctx, user))
	team := &models.PermissionsGroup{Name: "Analysts"}
	require.NoError(t, repos.Groups.Create(ctx, team))
	other := &models.PermissionsGroup{Name: "Others"}
	require.NoError(t, repos.Groups.Create(ctx, other))
	require.NoError(t, repos.Memberships.Create(ctx, &models.PermissionsGroupMembership{UserID: user.ID, GroupID: team.ID}))

	require.NoError(t, repos.Permissions.Grant(ctx, team.ID, "/collection/7/"))
	require.NoError(t, repos.Permissions.Grant(ctx, team.ID, "/collection/7/"))
	require.NoError(t, repos.Permissions.Grant(ctx, other.ID, "/collection/8/"))

	objects, err := repos.Permissions.ObjectsForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/collection/7/"}, objects)

	require.NoError(t, repos.Permissions.Revoke(ctx, team.ID, "/collection/7/"))
	perms, err := repos.Permissions.ListByGroup(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, perms)
}
