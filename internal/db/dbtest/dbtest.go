// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/ongood/metabase-sub001/internal/db/bunx"
	"github.com/ongood/metabase-sub001/internal/migrations"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// New returns a fresh SQLite database with every migration applied.
// The database is closed when the test finishes.
func New(t testing.TB, hooks ...bun.QueryHook) *bun.DB {
	t.Helper()

	db, err := bunx.NewDB(":memory:", hooks...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	_, err = migrations.Apply(context.Background(), db)
	require.NoError(t, err)

	return db
}

// QueryCounter is a bun query hook that counts executed statements.
type QueryCounter struct {
	Queries []string
	enabled bool
}

var _ bun.QueryHook = (*QueryCounter)(nil)

// Start resets the counter and begins recording.
func (c *QueryCounter) Start() {
	c.Queries = nil
	c.enabled = true
}

// Stop ends recording and returns the number of statements seen.
func (c *QueryCounter) Stop() int {
	c.enabled = false
	return len(c.Queries)
}

func (c *QueryCounter) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (c *QueryCounter) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	if c.enabled {
		c.Queries = append(c.Queries, event.Query)
	}
}
