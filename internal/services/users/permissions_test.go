package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ongood/metabase-sub001/internal/db/models"
)

func TestPermissionSet(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	user := f.createUser(t, "perms@example.com")
	other := f.createUser(t, "other@example.com")
	allUsers := f.magic.AllUsersGroupID()
	analysts := f.createGroup(t, "Analysts")

	personal, err := f.repos.Collections.GetPersonal(f.ctx, user.ID)
	require.NoError(t, err)
	child := &models.Collection{Name: "drafts", Location: personal.ChildLocation()}
	require.NoError(t, f.repos.Collections.Create(f.ctx, child))
	grandchild := &models.Collection{Name: "old", Location: child.ChildLocation()}
	require.NoError(t, f.repos.Collections.Create(f.ctx, grandchild))
	otherPersonal, err := f.repos.Collections.GetPersonal(f.ctx, other.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.GrantPermission(f.ctx, allUsers, "/collection/root/"))
	require.NoError(t, f.svc.GrantPermission(f.ctx, analysts, "/db/1/"))
	require.NoError(t, f.svc.GrantPermission(f.ctx, analysts, "/collection/root/"))
	_, err = f.svc.SetGroups(f.ctx, user.ID, []int64{allUsers, analysts}, SetGroupsOptions{})
	require.NoError(t, err)

	f.queries.Start()
	set, err := f.svc.PermissionSet(f.ctx, user.ID)
	counts := statementCounts(f.queries.Queries)
	f.queries.Stop()
	require.NoError(t, err)
	assert.Equal(t, 2, counts["SELECT"], "one personal-namespace query and one grant join")

	assert.Equal(t, []string{
		models.CollectionPermissionPath(personal.ID),
		models.CollectionPermissionPath(child.ID),
		models.CollectionPermissionPath(grandchild.ID),
		"/collection/root/",
		"/db/1/",
	}, sortedLike(set, personal.ID, child.ID, grandchild.ID))
	assert.False(t, set.Contains(models.CollectionPermissionPath(otherPersonal.ID)))

	otherSet, err := f.svc.PermissionSet(f.ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, otherSet.Contains(models.CollectionPermissionPath(otherPersonal.ID)))
	assert.True(t, otherSet.Contains("/collection/root/"))
	assert.False(t, otherSet.Contains("/db/1/"))
	assert.Len(t, otherSet, 2)
}

// sortedLike lists personal paths first in the given order, then the rest sorted.
func sortedLike(set PathSet, personalIDs ...int64) []string {
	out := make([]string, 0, len(set))
	skip := map[string]bool{}
	for _, id := range personalIDs {
		p := models.CollectionPermissionPath(id)
		if set.Contains(p) {
			out = append(out, p)
			skip[p] = true
		}
	}
	for _, p := range set.Sorted() {
		if !skip[p] {
			out = append(out, p)
		}
	}
	return out
}

func TestPermissionSetReflectsLatestState(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	user := f.createUser(t, "fresh@example.com")
	allUsers := f.magic.AllUsersGroupID()
	team := f.createGroup(t, "Team")
	require.NoError(t, f.svc.GrantPermission(f.ctx, team, "/collection/42/"))

	first, err := f.svc.PermissionSet(f.ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, first.Contains("/collection/42/"))

	personal, err := f.repos.Collections.GetPersonal(f.ctx, user.ID)
	require.NoError(t, err)
	child := &models.Collection{Name: "later", Location: personal.ChildLocation()}
	require.NoError(t, f.repos.Collections.Create(f.ctx, child))

	f.queries.Start()
	second, err := f.svc.PermissionSet(f.ctx, user.ID)
	counts := statementCounts(f.queries.Queries)
	f.queries.Stop()
	require.NoError(t, err)
	assert.Equal(t, 2, counts["SELECT"], "every call reads the store")
	assert.True(t, second.Contains(models.CollectionPermissionPath(child.ID)), "descendant created after the first read")

	second["/mutated/"] = struct{}{}
	third, err := f.svc.PermissionSet(f.ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, third.Contains("/mutated/"))

	_, err = f.svc.SetGroups(f.ctx, user.ID, []int64{allUsers, team}, SetGroupsOptions{})
	require.NoError(t, err)
	afterJoin, err := f.svc.PermissionSet(f.ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, afterJoin.Contains("/collection/42/"))

	require.NoError(t, f.svc.GrantPermission(f.ctx, team, "/collection/43/"))
	afterGrant, err := f.svc.PermissionSet(f.ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, afterGrant.Contains("/collection/43/"))
}

func TestPathSetSorted(t *testing.T) {
	set := PathSet{"/b/": {}, "/a/": {}}
	assert.Equal(t, []string{"/a/", "/b/"}, set.Sorted())
	assert.True(t, set.Contains("/a/"))
	assert.False(t, set.Contains("/c/"))
}
