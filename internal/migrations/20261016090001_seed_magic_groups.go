package migrations

import (
	"context"
	"fmt"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20261016090001, down_20261016090001)
}

// up_20261016090001 seeds the All Users and Administrators groups.
func up_20261016090001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] seeding magic groups...")

	for _, name := range []string{models.AllUsersGroupName, models.AdminGroupName} {
		group := &models.PermissionsGroup{Name: name}
		_, err := db.NewInsert().
			Model(group).
			On("CONFLICT (name) DO NOTHING"). // Idempotent
			Returning("NULL").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed group %s: %w", name, err)
		}
	}

	fmt.Println(" OK")
	return nil
}

func down_20261016090001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [down] removing magic groups...")

	_, err := db.NewDelete().
		Model((*models.PermissionsGroup)(nil)).
		Where("name IN (?)", bun.In([]string{models.AllUsersGroupName, models.AdminGroupName})).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove magic groups: %w", err)
	}

	fmt.Println(" OK")
	return nil
}
