package cmdutil

import (
	"context"
	"fmt"
	"strconv"

	"github.com/uptrace/bun"

	"github.com/ongood/metabase-sub001/internal/auth"
	"github.com/ongood/metabase-sub001/internal/config"
	"github.com/ongood/metabase-sub001/internal/db/bunx"
	"github.com/ongood/metabase-sub001/internal/i18n"
	"github.com/ongood/metabase-sub001/internal/notify"
	"github.com/ongood/metabase-sub001/internal/repository"
	"github.com/ongood/metabase-sub001/internal/secret"
	"github.com/ongood/metabase-sub001/internal/services/users"
	"github.com/ongood/metabase-sub001/internal/telemetry"
)

// UsersServiceBundle bundles the service with its underlying DB connection so callers can
// reuse the repositories when necessary.
type UsersServiceBundle struct {
	Service users.Service
	Repos   *repository.Repositories
	DB      *bun.DB
}

// Close releases the underlying database connection.
func (b *UsersServiceBundle) Close() {
	if b == nil || b.DB == nil {
		return
	}
	bunx.Close(b.DB)
}

// OpenDB connects to cfg.DatabaseURL with the metrics query hook attached.
func OpenDB(cfg *config.Config) (*bun.DB, error) {
	metrics, err := telemetry.NewDatabaseMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to create database metrics: %w", err)
	}
	hook := telemetry.NewQueryHook(metrics)
	if cfg.Debug {
		hook = hook.WithQueryLog()
	}

	db, err := bunx.NewDB(cfg.DatabaseURL, hook)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewUsersServiceBundle centralizes users service construction for CLI commands.
// It wires repositories, resolves the magic groups and returns a ready-to-use service.
func NewUsersServiceBundle(ctx context.Context, cfg *config.Config) (*UsersServiceBundle, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	repos := repository.New(db)

	magic, err := auth.LoadMagicGroups(ctx, repos.Groups)
	if err != nil {
		bunx.Close(db)
		return nil, err
	}

	box, err := secret.NewBox(cfg.EncryptionSecretKey)
	if err != nil {
		bunx.Close(db)
		return nil, fmt.Errorf("failed to initialize settings encryption: %w", err)
	}

	deps := users.Dependencies{
		Repos:    repos,
		Groups:   magic,
		Locales:  i18n.NewLocales(cfg.SupportedLocales),
		Features: cfg.Features,
		Secrets:  box,
		Notifier: notify.NewMailer(cfg.SiteName, cfg.SiteURL, notify.SenderFor(cfg.SMTP), repos.Users),
	}

	svc, err := users.New(deps)
	if err != nil {
		bunx.Close(db)
		return nil, fmt.Errorf("failed to create users service: %w", err)
	}

	return &UsersServiceBundle{
		Service: svc,
		Repos:   repos,
		DB:      db,
	}, nil
}

// ParseID parses a positional numeric id argument.
func ParseID(what, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

// LoadUsersServiceBundle loads configuration from the environment and builds the bundle.
// Subcommands use it so they do not depend on the root command's state.
func LoadUsersServiceBundle(ctx context.Context) (*UsersServiceBundle, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewUsersServiceBundle(ctx, cfg)
}
