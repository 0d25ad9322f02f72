package repository

import (
	"context"
	"testing"

	"github.com/ongood/metabase-sub001/internal/db/dbtest"
	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBunCollectionRepository_PersonalNamespaceIDs(t *testing.T) {
	db := dbtest.New(t)
	repos := New(db)
	ctx := context.Background()

	owner := &models.User{Email: "owner@example.com", IsActive: true}
	stranger := &models.User{Email: "stranger@example.com", IsActive: true}
	require.NoError(t, repos.Users.Create(ctx, owner))
	require.NoError(t, repos.Users.Create(ctx, stranger))

	personal := &models.Collection{Name: "Owner's Personal Collection", PersonalOwnerID: &owner.ID}
	require.NoError(t, repos.Collections.Create(ctx, personal))
	assert.Equal(t, models.RootLocation, personal.Location)

	child := &models.Collection{Name: "child", Location: personal.ChildLocation()}
	require.NoError(t, repos.Collections.Create(ctx, child))
	grandchild := &models.Collection{Name: "grandchild", Location: child.ChildLocation()}
	require.NoError(t, repos.Collections.Create(ctx, grandchild))
	shared := &models.Collection{Name: "shared"}
	require.NoError(t, repos.Collections.Create(ctx, shared))

	ids, err := repos.Collections.PersonalNamespaceIDs(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{personal.ID, child.ID, grandchild.ID}, ids)

	got, err := repos.Collections.GetPersonal(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, personal.ID, got.ID)

	t.Run("user without personal collection", func(t *testing.T) {
		ids, err := repos.Collections.PersonalNamespaceIDs(ctx, stranger.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)

		_, err = repos.Collections.GetPersonal(ctx, stranger.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("second personal collection rejected", func(t *testing.T) {
		err := repos.Collections.Create(ctx, &models.Collection{Name: "again", PersonalOwnerID: &owner.ID})
		assert.True(t, IsUniqueViolation(err))
	})
}
