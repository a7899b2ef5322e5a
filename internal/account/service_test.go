package account

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
	"github.com/stkrfx/digitaloffices-1/internal/cache"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/apperror"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

type memRepo struct {
	mu      sync.Mutex
	rows    map[string]*Account
	lookups int
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]*Account{}} }

func (m *memRepo) FindByEmail(_ context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) FindByID(_ context.Context, id string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	a, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memRepo) Create(_ context.Context, a *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	cp := *a
	m.rows[a.ID] = &cp
	return nil
}

func (m *memRepo) Update(_ context.Context, a *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[a.ID]; !ok {
		return ErrNotFound
	}
	cp := *a
	m.rows[a.ID] = &cp
	return nil
}

func (m *memRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.rows[id]; ok {
		a.LastLoginAt = &t
	}
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Compare(hash, p string) error {
	if hash != "h:"+p {
		return ErrInvalidCredentials
	}
	return nil
}

type testEnv struct {
	svc     Service
	repos   Repositories
	experts *memRepo
	redis   *miniredis.Miniredis
	logs    *logtest.Hook
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	experts := newMemRepo()
	repos := Repositories{Users: newMemRepo(), Experts: experts, Organizations: newMemRepo(), Admins: newMemRepo()}
	log, hook := logtest.NewNullLogger()
	svc := NewService(repos, plainHasher{}, cache.NewJSONCache(client, "profile", time.Minute), log)
	return testEnv{svc: svc, repos: repos, experts: experts, redis: mr, logs: hook}
}

func TestRepositoriesForDispatchesByRole(t *testing.T) {
	env := newTestEnv(t)
	for _, role := range auth.Roles {
		repo, err := env.repos.For(role)
		require.NoError(t, err, role)
		assert.NotNil(t, repo)
	}
	repo, _ := env.repos.For(auth.RoleExpert)
	assert.Same(t, env.experts, repo)

	_, err := env.repos.For(auth.Role("superuser"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.svc.Register(ctx, auth.RoleExpert, "  Dr.Who@Example.com ", "tardis-42", "The Doctor")
	require.NoError(t, err)
	assert.Equal(t, "dr.who@example.com", a.Email)
	assert.Equal(t, auth.RoleExpert, a.Role)

	_, err = env.svc.Register(ctx, auth.RoleExpert, "dr.who@example.com", "tardis-42", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	// Same email in another role table is a different identity.
	_, err = env.svc.Register(ctx, auth.RoleUser, "dr.who@example.com", "tardis-42", "")
	assert.NoError(t, err)

	_, err = env.svc.Register(ctx, auth.RoleUser, "short@example.com", "1234", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	logged, err := env.svc.Login(ctx, auth.RoleExpert, "DR.WHO@example.com", "tardis-42")
	require.NoError(t, err)
	assert.Equal(t, a.ID, logged.ID)
	assert.NotNil(t, logged.LastLoginAt)

	_, err = env.svc.Login(ctx, auth.RoleExpert, "dr.who@example.com", "wrong-pass")
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	_, err = env.svc.Login(ctx, auth.RoleOrganization, "dr.who@example.com", "tardis-42")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProviderProfileIsCachedAndInvalidated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.svc.Register(ctx, auth.RoleExpert, "coach@example.com", "password1", "Coach")
	require.NoError(t, err)
	owner := provider.Expert(a.ID)
	before := env.experts.lookups

	p, err := env.svc.GetProviderProfile(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Coach", p.DisplayName)
	assert.Equal(t, provider.KindExpert, p.Kind)
	assert.True(t, env.redis.Exists("profile:expert:"+a.ID))

	_, err = env.svc.GetProviderProfile(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, before+1, env.experts.lookups, "second read served from cache")

	_, err = env.svc.UpdateProfile(ctx, auth.RoleExpert, a.ID, "Head Coach")
	require.NoError(t, err)
	assert.False(t, env.redis.Exists("profile:expert:"+a.ID))

	p, err = env.svc.GetProviderProfile(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Head Coach", p.DisplayName)
}

func TestProviderProfileSurvivesCacheOutage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.svc.Register(ctx, auth.RoleExpert, "lawyer@example.com", "password1", "Counsel")
	require.NoError(t, err)

	env.redis.SetError("LOADING redis is loading the dataset in memory")

	p, err := env.svc.GetProviderProfile(ctx, provider.Expert(a.ID))
	require.NoError(t, err)
	assert.Equal(t, "Counsel", p.DisplayName)

	_, err = env.svc.GetProviderProfile(ctx, provider.Organization(a.ID))
	assert.ErrorIs(t, err, ErrNotFound, "expert id is not an organization")
}

func TestUpdateProfileSucceedsWhenInvalidationFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.svc.Register(ctx, auth.RoleExpert, "coach@example.com", "password1", "Old")
	require.NoError(t, err)

	env.redis.SetError("LOADING redis is loading the dataset in memory")

	updated, err := env.svc.UpdateProfile(ctx, auth.RoleExpert, a.ID, "New")
	require.NoError(t, err)
	require.NotNil(t, updated.DisplayName)
	assert.Equal(t, "New", *updated.DisplayName)

	entry := env.logs.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "expert:"+a.ID, entry.Data["key"])

	env.redis.SetError("")
	p, err := env.svc.GetProviderProfile(ctx, provider.Expert(a.ID))
	require.NoError(t, err)
	assert.Equal(t, "New", p.DisplayName)
}
