package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/uptrace/bun"
)

// BunGroupRepository implements GroupRepository using Bun ORM
type BunGroupRepository struct {
	db bun.IDB
}

// NewBunGroupRepository creates a new Bun-based group repository
func NewBunGroupRepository(db bun.IDB) *BunGroupRepository {
	return &BunGroupRepository{db: db}
}

// Create inserts a new group
func (r *BunGroupRepository) Create(ctx context.Context, group *models.PermissionsGroup) error {
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NewInsert().
		Model(group).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return wrapWriteError("create group", err)
	}
	return nil
}

// GetByID retrieves a group by id
func (r *BunGroupRepository) GetByID(ctx context.Context, id int64) (*models.PermissionsGroup, error) {
	group := new(models.PermissionsGroup)
	err := r.db.NewSelect().
		Model(group).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("group", id)
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return group, nil
}

// GetByName retrieves a group by name
func (r *BunGroupRepository) GetByName(ctx context.Context, name string) (*models.PermissionsGroup, error) {
	group := new(models.PermissionsGroup)
	err := r.db.NewSelect().
		Model(group).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("group", name)
		}
		return nil, fmt.Errorf("get group by name: %w", err)
	}
	return group, nil
}

// List returns all groups ordered by id
func (r *BunGroupRepository) List(ctx context.Context) ([]models.PermissionsGroup, error) {
	var groups []models.PermissionsGroup
	err := r.db.NewSelect().
		Model(&groups).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
