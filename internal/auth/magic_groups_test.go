package auth

import (
	"context"
	"testing"

	"github.com/ongood/metabase-sub001/internal/db/dbtest"
	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/ongood/metabase-sub001/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMagicGroups(t *testing.T) {
	db := dbtest.New(t)
	groups := repository.NewBunGroupRepository(db)
	ctx := context.Background()

	magic, err := LoadMagicGroups(ctx, groups)
	require.NoError(t, err)
	assert.NotZero(t, magic.AllUsersGroupID())
	assert.NotZero(t, magic.AdminGroupID())
	assert.NotEqual(t, magic.AllUsersGroupID(), magic.AdminGroupID())

	admin, err := groups.GetByName(ctx, models.AdminGroupName)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, magic.AdminGroupID())
	assert.True(t, magic.IsMagic(admin.ID))
	assert.False(t, magic.IsMagic(admin.ID+100))
}

func TestLoadMagicGroupsMissing(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	_, err := db.NewDelete().
		Model((*models.PermissionsGroup)(nil)).
		Where("name = ?", models.AdminGroupName).
		Exec(ctx)
	require.NoError(t, err)

	_, err = LoadMagicGroups(ctx, repository.NewBunGroupRepository(db))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
