package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ongood/metabase-sub001/internal/db/dbtest"
	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositories_RunInTx(t *testing.T) {
	db := dbtest.New(t)
	repos := New(db)
	ctx := context.Background()
	assert.False(t, repos.InTx())

	t.Run("commits on success", func(t *testing.T) {
		err := repos.RunInTx(ctx, func(ctx context.Context, tx *Repositories) error {
			assert.True(t, tx.InTx())
			return tx.Users.Create(ctx, &models.User{Email: "commit@example.com", IsActive: true})
		})
		require.NoError(t, err)

		_, err = repos.Users.GetByEmail(ctx, "commit@example.com")
		assert.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := repos.RunInTx(ctx, func(ctx context.Context, tx *Repositories) error {
			if err := tx.Users.Create(ctx, &models.User{Email: "rollback@example.com", IsActive: true}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = repos.Users.GetByEmail(ctx, "rollback@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nested call joins the outer transaction", func(t *testing.T) {
		boom := errors.New("outer failure")
		err := repos.RunInTx(ctx, func(ctx context.Context, tx *Repositories) error {
			inner := tx.RunInTx(ctx, func(ctx context.Context, nested *Repositories) error {
				assert.Same(t, tx, nested)
				return nested.Users.Create(ctx, &models.User{Email: "nested@example.com", IsActive: true})
			})
			require.NoError(t, inner)
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = repos.Users.GetByEmail(ctx, "nested@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBunSessionAndSubscriptionRepositories(t *testing.T) {
	db := dbtest.New(t)
	repos := New(db)
	ctx := context.Background()

	user := &models.User{Email: "sess@example.com", IsActive: true}
	require.NoError(t, repos.Users.Create(ctx, user))

	first := &models.Session{UserID: user.ID, TokenHash: "first", ExpiresAt: time.Now().Add(time.Hour)}
	second := &models.Session{UserID: user.ID, TokenHash: "second", ExpiresAt: time.Now().Add(2 * time.Hour)}
	require.NoError(t, repos.Sessions.Create(ctx, first))
	require.NoError(t, repos.Sessions.Create(ctx, second))
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	sessions, err := repos.Sessions.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	require.NoError(t, repos.Sessions.InvalidateAllSessions(ctx, user.ID))
	sessions, err = repos.Sessions.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	require.NoError(t, repos.Subscriptions.Create(ctx, &models.NotificationSubscription{UserID: user.ID, Channel: "email", Target: "pulse:1"}))
	require.NoError(t, repos.Subscriptions.Create(ctx, &models.NotificationSubscription{UserID: user.ID, Channel: "slack", Target: "alert:2"}))
	subs, err := repos.Subscriptions.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	require.NoError(t, repos.Subscriptions.DeleteSubscriptionsForUser(ctx, user.ID))
	subs, err = repos.Subscriptions.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)
}
