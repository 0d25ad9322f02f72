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

// BunCollectionRepository implements CollectionRepository using Bun ORM
type BunCollectionRepository struct {
	db bun.IDB
}

// NewBunCollectionRepository creates a new Bun-based collection repository
func NewBunCollectionRepository(db bun.IDB) *BunCollectionRepository {
	return &BunCollectionRepository{db: db}
}

// Create inserts a collection
func (r *BunCollectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	if collection.Location == "" {
		collection.Location = models.RootLocation
	}
	if collection.CreatedAt.IsZero() {
		collection.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NewInsert().
		Model(collection).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return wrapWriteError("create collection", err)
	}
	return nil
}

// GetPersonal returns the user's personal collection
func (r *BunCollectionRepository) GetPersonal(ctx context.Context, userID int64) (*models.Collection, error) {
	collection := new(models.Collection)
	err := r.db.NewSelect().
		Model(collection).
		Where("personal_owner_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("personal collection for user", userID)
		}
		return nil, fmt.Errorf("get personal collection: %w", err)
	}
	return collection, nil
}

// PersonalNamespaceIDs returns the personal collection and its descendants in one query.
// Personal collections live at the root, so descendants have locations starting with "/<id>/".
func (r *BunCollectionRepository) PersonalNamespaceIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.NewSelect().
		Model((*models.Collection)(nil)).
		ColumnExpr("c.id").
		Where("c.personal_owner_id = ?", userID).
		WhereOr("c.location LIKE (SELECT '/' || p.id || '/%' FROM collection AS p WHERE p.personal_owner_id = ?)", userID).
		Order("c.id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("list personal namespace: %w", err)
	}
	return ids, nil
}
