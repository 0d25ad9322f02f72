package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ongood/metabase-sub001/internal/db/bunx"
	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/uptrace/bun"
)

// BunSessionRepository implements SessionRepository using Bun ORM
type BunSessionRepository struct {
	db bun.IDB
}

// NewBunSessionRepository creates a new Bun-based session repository
func NewBunSessionRepository(db bun.IDB) *BunSessionRepository {
	return &BunSessionRepository{db: db}
}

// Create inserts a new session, assigning an id when unset
func (r *BunSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = bunx.NewUUIDv7()
	}
	session.ExpiresAt = session.ExpiresAt.UTC()
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	if session.LastUsedAt.IsZero() {
		session.LastUsedAt = now
	}
	_, err := r.db.NewInsert().
		Model(session).
		Exec(ctx)
	if err != nil {
		return wrapWriteError("create session", err)
	}
	return nil
}

// GetByUserID retrieves all sessions for a user
func (r *BunSessionRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.NewSelect().
		Model(&sessions).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("get user sessions: %w", err)
	}
	return sessions, nil
}

// InvalidateAllSessions deletes every session of a user
func (r *BunSessionRepository) InvalidateAllSessions(ctx context.Context, userID int64) error {
	_, err := r.db.NewDelete().
		Model((*models.Session)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("invalidate sessions: %w", err)
	}
	return nil
}
