package repository

import (
	"context"
	"fmt"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/uptrace/bun"
)

// BunPermissionRepository implements PermissionRepository using Bun ORM
type BunPermissionRepository struct {
	db bun.IDB
}

// NewBunPermissionRepository creates a new Bun-based permission repository
func NewBunPermissionRepository(db bun.IDB) *BunPermissionRepository {
	return &BunPermissionRepository{db: db}
}

// Grant adds an object path to a group. Granting twice is a no-op.
func (r *BunPermissionRepository) Grant(ctx context.Context, groupID int64, object string) error {
	perm := &models.Permission{GroupID: groupID, Object: object}
	_, err := r.db.NewInsert().
		Model(perm).
		On("CONFLICT (group_id, object) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return wrapWriteError("grant permission", err)
	}
	return nil
}

// Revoke removes an object path from a group
func (r *BunPermissionRepository) Revoke(ctx context.Context, groupID int64, object string) error {
	_, err := r.db.NewDelete().
		Model((*models.Permission)(nil)).
		Where("group_id = ?", groupID).
		Where("object = ?", object).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}
	return nil
}

// ListByGroup returns a group's grants ordered by object
func (r *BunPermissionRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.Permission, error) {
	var perms []models.Permission
	err := r.db.NewSelect().
		Model(&perms).
		Where("group_id = ?", groupID).
		Order("object ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return perms, nil
}

// ObjectsForUser returns every object path granted to any of the user's groups
func (r *BunPermissionRepository) ObjectsForUser(ctx context.Context, userID int64) ([]string, error) {
	var objects []string
	err := r.db.NewSelect().
		TableExpr("permissions AS p").
		ColumnExpr("p.object").
		Join("JOIN permissions_group_membership AS pgm ON pgm.group_id = p.group_id").
		Where("pgm.user_id = ?", userID).
		Scan(ctx, &objects)
	if err != nil {
		return nil, fmt.Errorf("list permission objects: %w", err)
	}
	return objects, nil
}
