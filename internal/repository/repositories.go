package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// Repositories bundles every repository over one database handle.
// A bundle handed out by RunInTx is scoped to that transaction; callers must
// only use the tx bundle inside the callback since SQLite runs with a single
// connection.
type Repositories struct {
	db *bun.DB // nil when scoped to a transaction
	tx bun.IDB

	Users         UserRepository
	Groups        GroupRepository
	Memberships   MembershipRepository
	Permissions   PermissionRepository
	Collections   CollectionRepository
	Subscriptions SubscriptionRepository
	Sessions      SessionRepository
}

// New builds the repository bundle for db.
func New(db *bun.DB) *Repositories {
	r := newRepositories(db)
	r.db = db
	return r
}

func newRepositories(idb bun.IDB) *Repositories {
	return &Repositories{
		tx:            idb,
		Users:         NewBunUserRepository(idb),
		Groups:        NewBunGroupRepository(idb),
		Memberships:   NewBunMembershipRepository(idb),
		Permissions:   NewBunPermissionRepository(idb),
		Collections:   NewBunCollectionRepository(idb),
		Subscriptions: NewBunSubscriptionRepository(idb),
		Sessions:      NewBunSessionRepository(idb),
	}
}

// InTx reports whether the bundle is scoped to a transaction.
func (r *Repositories) InTx() bool {
	return r.db == nil
}

// IDB returns the handle the repositories run on.
func (r *Repositories) IDB() bun.IDB {
	return r.tx
}

// RunInTx runs fn in a transaction and commits when fn returns nil.
// When r is already scoped to a transaction, fn joins it.
func (r *Repositories) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *Repositories) error) error {
	if r.InTx() {
		return fn(ctx, r)
	}

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, newRepositories(tx))
	})
	if err != nil {
		return fmt.Errorf("transaction: %w", err)
	}
	return nil
}
