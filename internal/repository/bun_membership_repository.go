package repository

import (
	"context"
	"fmt"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/uptrace/bun"
)

// BunMembershipRepository implements MembershipRepository using Bun ORM
type BunMembershipRepository struct {
	db bun.IDB
}

// NewBunMembershipRepository creates a new Bun-based membership repository
func NewBunMembershipRepository(db bun.IDB) *BunMembershipRepository {
	return &BunMembershipRepository{db: db}
}

// Create inserts a single membership edge
func (r *BunMembershipRepository) Create(ctx context.Context, membership *models.PermissionsGroupMembership) error {
	_, err := r.db.NewInsert().
		Model(membership).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return wrapWriteError("create membership", err)
	}
	return nil
}

// Exists reports whether the user belongs to the group
func (r *BunMembershipRepository) Exists(ctx context.Context, userID, groupID int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.PermissionsGroupMembership)(nil)).
		Where("user_id = ?", userID).
		Where("group_id = ?", groupID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}

// ListByUser returns the user's memberships ordered by group id
func (r *BunMembershipRepository) ListByUser(ctx context.Context, userID int64) ([]models.PermissionsGroupMembership, error) {
	var memberships []models.PermissionsGroupMembership
	err := r.db.NewSelect().
		Model(&memberships).
		Where("user_id = ?", userID).
		Order("group_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return memberships, nil
}

// ListByUsers returns memberships for every given user in a single query
func (r *BunMembershipRepository) ListByUsers(ctx context.Context, userIDs []int64) ([]models.PermissionsGroupMembership, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var memberships []models.PermissionsGroupMembership
	err := r.db.NewSelect().
		Model(&memberships).
		Where("user_id IN (?)", bun.In(userIDs)).
		Order("user_id ASC", "group_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list memberships for users: %w", err)
	}
	return memberships, nil
}

// GroupIDsForUser returns the ids of the groups the user belongs to
func (r *BunMembershipRepository) GroupIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.NewSelect().
		Model((*models.PermissionsGroupMembership)(nil)).
		Column("group_id").
		Where("user_id = ?", userID).
		Order("group_id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("list group ids: %w", err)
	}
	return ids, nil
}

type userGroupRow struct {
	UserID  int64 `bun:"user_id"`
	GroupID int64 `bun:"group_id"`
}

// GroupIDsForUsers returns group ids keyed by user id in a single query.
// Users without memberships are absent from the map.
func (r *BunMembershipRepository) GroupIDsForUsers(ctx context.Context, userIDs []int64) (map[int64][]int64, error) {
	result := make(map[int64][]int64, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []userGroupRow
	err := r.db.NewSelect().
		Model((*models.PermissionsGroupMembership)(nil)).
		Column("user_id", "group_id").
		Where("user_id IN (?)", bun.In(userIDs)).
		Order("user_id ASC", "group_id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("list group ids for users: %w", err)
	}

	for _, row := range rows {
		result[row.UserID] = append(result[row.UserID], row.GroupID)
	}
	return result, nil
}

// DeleteForUser removes the user's memberships in the given groups with one statement
func (r *BunMembershipRepository) DeleteForUser(ctx context.Context, userID int64, groupIDs []int64) (int64, error) {
	if len(groupIDs) == 0 {
		return 0, nil
	}
	res, err := r.db.NewDelete().
		Model((*models.PermissionsGroupMembership)(nil)).
		Where("user_id = ?", userID).
		Where("group_id IN (?)", bun.In(groupIDs)).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete memberships: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return rows, nil
}
