package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePatch(t *testing.T) {
	patch, err := DecodePatch(map[string]any{
		"email":        "New@Example.com",
		"is_active":    "false",
		"is_superuser": "1",
		"first_name":   "Ada",
	})
	require.NoError(t, err)
	require.NotNil(t, patch.Email)
	assert.Equal(t, "New@Example.com", *patch.Email)
	require.NotNil(t, patch.IsActive)
	assert.False(t, *patch.IsActive)
	require.NotNil(t, patch.IsSuperuser)
	assert.True(t, *patch.IsSuperuser)
	assert.Equal(t, "Ada", *patch.FirstName)
	assert.Nil(t, patch.LastName)
	assert.Nil(t, patch.Password)

	_, err = DecodePatch(map[string]any{"favourite_colour": "blue"})
	assert.True(t, IsValidationError(err))
}

func TestDecodePatchFeedsUpdate(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	user := f.createUser(t, "decoded@example.com")

	patch, err := DecodePatch(map[string]any{"is_superuser": "true", "locale": "de"})
	require.NoError(t, err)

	updated, err := f.svc.Update(f.ctx, user.ID, patch)
	require.NoError(t, err)
	assert.True(t, updated.IsSuperuser)
	assert.Equal(t, "de", *updated.Locale)
	assert.True(t, f.isMember(t, user.ID, f.magic.AdminGroupID()))
}
