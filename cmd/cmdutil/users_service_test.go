package cmdutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ongood/metabase-sub001/internal/config"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("user", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, arg := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParseID("user", arg)
		assert.Error(t, err, arg)
	}
}

func TestNewUsersServiceBundleRequiresMigratedSchema(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL:      ":memory:",
		SupportedLocales: config.DefaultSupportedLocales,
	}

	bundle, err := NewUsersServiceBundle(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, bundle)
	assert.Contains(t, err.Error(), "run migrations")
}

func TestBundleCloseNil(t *testing.T) {
	var bundle *UsersServiceBundle
	assert.NotPanics(t, bundle.Close)
}
