package impersonation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/infrastructure/cache/cachetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ err error }

func (f failingStore) Load(context.Context, string) (map[string]string, error) { return nil, f.err }
func (f failingStore) Apply(context.Context, string, []string, map[string]string) error {
	return f.err
}

func TestSwitch_StartCustomer(t *testing.T) {
	s := NewSwitch(NewMemoryStore(0), nil)
	ctx := context.Background()

	u, err := s.StartCustomer(ctx, "sess-1", " cust-1 ", "ana@example.com", "Ana")
	require.NoError(t, err)
	assert.Equal(t, entities.ImpersonatedUser{Kind: entities.ImpersonationCustomer, ID: "cust-1", Email: "ana@example.com", Name: "Ana"}, u)

	got, err := s.Current(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, u, got)
	assert.True(t, got.Active())

	other, err := s.Current(ctx, "sess-2")
	require.NoError(t, err)
	assert.False(t, other.Active())
}

func TestSwitch_OnlyOneKindActive(t *testing.T) {
	store := NewMemoryStore(0)
	s := NewSwitch(store, nil)
	ctx := context.Background()

	_, err := s.StartCustomer(ctx, "sess", "cust-1", "ana@example.com", "Ana")
	require.NoError(t, err)
	lab, err := s.StartLab(ctx, "sess", "lab-1", "Central Lab", "lab_admin")
	require.NoError(t, err)

	values, err := store.Load(ctx, "sess")
	require.NoError(t, err)
	for _, k := range customerKeys {
		assert.NotContains(t, values, k)
	}
	got, err := s.Current(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, lab, got)

	_, err = s.StartCustomer(ctx, "sess", "cust-2", "", "Bruno")
	require.NoError(t, err)
	values, err = store.Load(ctx, "sess")
	require.NoError(t, err)
	for _, k := range labKeys {
		assert.NotContains(t, values, k)
	}
	assert.Equal(t, "cust-2", values[KeyCustomerID])
}

func TestSwitch_Stop(t *testing.T) {
	s := NewSwitch(NewMemoryStore(0), nil)
	ctx := context.Background()

	_, err := s.StartLab(ctx, "sess", "lab-1", "Central Lab", "lab_user")
	require.NoError(t, err)
	require.NoError(t, s.Stop(ctx, "sess"))

	got, err := s.Current(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, entities.ImpersonatedUser{}, got)

	assert.ErrorIs(t, s.Stop(ctx, " "), ErrMissingSession)
}

func TestSwitch_Validation(t *testing.T) {
	s := NewSwitch(NewMemoryStore(0), nil)
	ctx := context.Background()

	_, err := s.StartCustomer(ctx, "", "cust-1", "", "")
	assert.ErrorIs(t, err, ErrMissingSession)
	_, err = s.StartLab(ctx, "sess", "  ", "", "")
	assert.ErrorIs(t, err, ErrMissingTarget)

	got, err := s.Current(ctx, "")
	require.NoError(t, err)
	assert.False(t, got.Active())
}

func TestSwitch_StoreErrorSkipsListeners(t *testing.T) {
	boom := errors.New("boom")
	s := NewSwitch(failingStore{err: boom}, nil)
	called := false
	defer s.Subscribe(func(string, entities.ImpersonatedUser) { called = true })()

	_, err := s.StartCustomer(context.Background(), "sess", "cust-1", "", "")
	assert.ErrorIs(t, err, boom)
	_, err = s.Current(context.Background(), "sess")
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestSwitch_Subscribe(t *testing.T) {
	s := NewSwitch(NewMemoryStore(0), nil)
	ctx := context.Background()

	var mu sync.Mutex
	var seen []entities.ImpersonatedUser
	unsubscribe := s.Subscribe(func(session string, u entities.ImpersonatedUser) {
		assert.Equal(t, "sess", session)
		mu.Lock()
		seen = append(seen, u)
		mu.Unlock()
	})

	_, err := s.StartCustomer(ctx, "sess", "cust-1", "", "Ana")
	require.NoError(t, err)
	require.NoError(t, s.Stop(ctx, "sess"))

	unsubscribe()
	unsubscribe()
	_, err = s.StartLab(ctx, "sess", "lab-1", "", "")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, "cust-1", seen[0].ID)
	assert.False(t, seen[1].Active())
}

func TestMemoryStore_TTL(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Apply(ctx, "sess", nil, map[string]string{KeyLabID: "lab-1"}))
	now = now.Add(59 * time.Second)
	values, err := store.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, "lab-1", values[KeyLabID])

	now = now.Add(time.Second)
	values, err = store.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestRedisStore(t *testing.T) {
	client := cachetest.NewTestClient(t)
	s := NewSwitch(NewRedisStore(client, time.Minute), nil)
	ctx := context.Background()

	_, err := s.StartCustomer(ctx, "sess-r", "cust-1", "ana@example.com", "Ana")
	require.NoError(t, err)
	_, err = s.StartLab(ctx, "sess-r", "lab-1", "Central Lab", "lab_admin")
	require.NoError(t, err)

	values, err := client.HGetAll(ctx, "labtracker:impersonation:sess-r").Result()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyLabID: "lab-1", KeyLabName: "Central Lab", KeyLabRole: "lab_admin"}, values)

	ttl, err := client.TTL(ctx, "labtracker:impersonation:sess-r").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Stop(ctx, "sess-r"))
	got, err := s.Current(ctx, "sess-r")
	require.NoError(t, err)
	assert.False(t, got.Active())
}
