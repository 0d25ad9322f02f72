package migrations

import (
	"context"
	"fmt"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20261016090000, down_20261016090000)
}

type tableSpec struct {
	name        string
	model       any
	foreignKeys []string
	indexes     []string
}

func accountTables() []tableSpec {
	return []tableSpec{
		{
			name:  "core_user",
			model: (*models.User)(nil),
			indexes: []string{
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_core_user_email_lower ON core_user (lower(email))`,
			},
		},
		{
			name:  "permissions_group",
			model: (*models.PermissionsGroup)(nil),
		},
		{
			name:  "permissions_group_membership",
			model: (*models.PermissionsGroupMembership)(nil),
			foreignKeys: []string{
				`("user_id") REFERENCES "core_user" ("id") ON DELETE CASCADE`,
				`("group_id") REFERENCES "permissions_group" ("id") ON DELETE CASCADE`,
			},
			indexes: []string{
				`CREATE INDEX IF NOT EXISTS idx_pgm_group_id ON permissions_group_membership (group_id)`,
			},
		},
		{
			name:  "permissions",
			model: (*models.Permission)(nil),
			foreignKeys: []string{
				`("group_id") REFERENCES "permissions_group" ("id") ON DELETE CASCADE`,
			},
		},
		{
			name:  "collection",
			model: (*models.Collection)(nil),
			foreignKeys: []string{
				`("personal_owner_id") REFERENCES "core_user" ("id") ON DELETE CASCADE`,
			},
			indexes: []string{
				`CREATE INDEX IF NOT EXISTS idx_collection_location ON collection (location)`,
			},
		},
		{
			name:  "notification_subscription",
			model: (*models.NotificationSubscription)(nil),
			foreignKeys: []string{
				`("user_id") REFERENCES "core_user" ("id") ON DELETE CASCADE`,
			},
			indexes: []string{
				`CREATE INDEX IF NOT EXISTS idx_notification_subscription_user_id ON notification_subscription (user_id)`,
			},
		},
		{
			name:  "core_session",
			model: (*models.Session)(nil),
			foreignKeys: []string{
				`("user_id") REFERENCES "core_user" ("id") ON DELETE CASCADE`,
			},
			indexes: []string{
				`CREATE INDEX IF NOT EXISTS idx_core_session_user_id ON core_session (user_id)`,
			},
		},
	}
}

// up_20261016090000 creates users, groups, memberships, permissions, namespaces,
// subscriptions and sessions.
func up_20261016090000(ctx context.Context, db *bun.DB) error {
	for _, table := range accountTables() {
		fmt.Printf(" [up] creating %s table...", table.name)

		q := db.NewCreateTable().
			Model(table.model).
			IfNotExists()
		for _, fk := range table.foreignKeys {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}

		for _, stmt := range table.indexes {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", table.name, err)
			}
		}
		fmt.Println(" OK")
	}
	return nil
}

func down_20261016090000(ctx context.Context, db *bun.DB) error {
	tables := accountTables()
	for i := len(tables) - 1; i >= 0; i-- {
		fmt.Printf(" [down] dropping %s table...", tables[i].name)
		if _, err := db.ExecContext(ctx, dropTableSQL(db, tables[i].name)); err != nil {
			return fmt.Errorf("failed to drop %s table: %w", tables[i].name, err)
		}
		fmt.Println(" OK")
	}
	return nil
}
