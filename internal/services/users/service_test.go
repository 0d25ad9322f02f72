package users

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ongood/metabase-sub001/internal/auth"
	"github.com/ongood/metabase-sub001/internal/config"
	"github.com/ongood/metabase-sub001/internal/db/dbtest"
	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/ongood/metabase-sub001/internal/i18n"
	"github.com/ongood/metabase-sub001/internal/repository"
	"github.com/ongood/metabase-sub001/internal/secret"
)

func init() {
	auth.BcryptCost = bcrypt.MinCost
}

type welcomeCall struct {
	user      *models.User
	invitor   *models.User
	fromSetup bool
}

type adminJoinedCall struct {
	user      *models.User
	viaGoogle bool
}

type stubNotifier struct {
	mu          sync.Mutex
	welcome     []welcomeCall
	adminJoined []adminJoinedCall
	err         error
}

func (n *stubNotifier) SendWelcomeEmail(_ context.Context, user, invitor *models.User, fromSetup bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcome = append(n.welcome, welcomeCall{user: user, invitor: invitor, fromSetup: fromSetup})
	return n.err
}

func (n *stubNotifier) SendAdminJoinedNotification(_ context.Context, user *models.User, viaGoogle bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.adminJoined = append(n.adminJoined, adminJoinedCall{user: user, viaGoogle: viaGoogle})
	return n.err
}

type fixtureOptions struct {
	advancedPermissions bool
	secretKey           string
}

type fixture struct {
	ctx      context.Context
	repos    *repository.Repositories
	svc      Service
	magic    *auth.MagicGroups
	queries  *dbtest.QueryCounter
	notifier *stubNotifier
}

func newFixture(t *testing.T, opts fixtureOptions) *fixture {
	t.Helper()

	counter := &dbtest.QueryCounter{}
	db := dbtest.New(t, counter)
	repos := repository.New(db)
	ctx := context.Background()

	magic, err := auth.LoadMagicGroups(ctx, repos.Groups)
	require.NoError(t, err)

	box, err := secret.NewBox(opts.secretKey)
	require.NoError(t, err)

	notifier := &stubNotifier{}
	svc, err := New(Dependencies{
		Repos:    repos,
		Groups:   magic,
		Locales:  i18n.NewLocales(config.DefaultSupportedLocales),
		Features: config.Features{AdvancedPermissions: opts.advancedPermissions},
		Secrets:  box,
		Notifier: notifier,
	})
	require.NoError(t, err)

	return &fixture{
		ctx:      ctx,
		repos:    repos,
		svc:      svc,
		magic:    magic,
		queries:  counter,
		notifier: notifier,
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func (f *fixture) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := f.svc.Create(f.ctx, CreateInput{Email: email, Password: strPtr("Passw0rd!")})
	require.NoError(t, err)
	return user
}

func (f *fixture) createGroup(t *testing.T, name string) int64 {
	t.Helper()
	group, err := f.svc.CreateGroup(f.ctx, name)
	require.NoError(t, err)
	return group.ID
}

func (f *fixture) groupIDs(t *testing.T, userID int64) []int64 {
	t.Helper()
	ids, err := f.repos.Memberships.GroupIDsForUser(f.ctx, userID)
	require.NoError(t, err)
	return ids
}

func (f *fixture) isMember(t *testing.T, userID, groupID int64) bool {
	t.Helper()
	ok, err := f.repos.Memberships.Exists(f.ctx, userID, groupID)
	require.NoError(t, err)
	return ok
}

// statementCounts splits recorded statements by verb.
func statementCounts(queries []string) map[string]int {
	counts := map[string]int{}
	for _, q := range queries {
		fields := strings.Fields(q)
		if len(fields) == 0 {
			continue
		}
		counts[strings.ToUpper(fields[0])]++
	}
	return counts
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Dependencies{})
	require.Error(t, err)
}
