package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/uptrace/bun"
)

// BunSubscriptionRepository implements SubscriptionRepository using Bun ORM
type BunSubscriptionRepository struct {
	db bun.IDB
}

// NewBunSubscriptionRepository creates a new Bun-based subscription repository
func NewBunSubscriptionRepository(db bun.IDB) *BunSubscriptionRepository {
	return &BunSubscriptionRepository{db: db}
}

// Create inserts a subscription
func (r *BunSubscriptionRepository) Create(ctx context.Context, subscription *models.NotificationSubscription) error {
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.NewInsert().
		Model(subscription).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return wrapWriteError("create subscription", err)
	}
	return nil
}

// ListByUser returns the user's subscriptions ordered by id
func (r *BunSubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]models.NotificationSubscription, error) {
	var subs []models.NotificationSubscription
	err := r.db.NewSelect().
		Model(&subs).
		Where("user_id = ?", userID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

// DeleteSubscriptionsForUser removes every subscription the user holds
func (r *BunSubscriptionRepository) DeleteSubscriptionsForUser(ctx context.Context, userID int64) error {
	_, err := r.db.NewDelete().
		Model((*models.NotificationSubscription)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete subscriptions: %w", err)
	}
	return nil
}
