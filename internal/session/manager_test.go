package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/models"
)

func newTestManager(t *testing.T) (*Manager, *MemoryStore, *time.Time) {
	t.Helper()

	store := NewMemoryStore()
	m, err := NewManager(store, "test-secret", time.Hour)
	require.NoError(t, err)

	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	store.now = m.now
	return m, store, &now
}

var diner = models.Identity{UID: "uid-1", Email: "diner@example.com", UserID: 7}

func TestCreateAndResolve(t *testing.T) {
	m, store, _ := newTestManager(t)

	cookie, err := m.Create(context.Background(), diner)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	got, err := m.Resolve(context.Background(), cookie)
	require.NoError(t, err)
	assert.Equal(t, diner, got)
}

func TestResolveRejectsForgedCookie(t *testing.T) {
	m, store, _ := newTestManager(t)
	cookie, err := m.Create(context.Background(), diner)
	require.NoError(t, err)

	other, err := NewManager(store, "other-secret", time.Hour)
	require.NoError(t, err)
	other.now = m.now

	_, err = other.Resolve(context.Background(), cookie)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = m.Resolve(context.Background(), cookie+"x")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolveAfterExpiry(t *testing.T) {
	m, _, now := newTestManager(t)
	cookie, err := m.Create(context.Background(), diner)
	require.NoError(t, err)

	*now = now.Add(2 * time.Hour)

	_, err = m.Resolve(context.Background(), cookie)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestDestroyIsIdempotent(t *testing.T) {
	m, store, _ := newTestManager(t)
	cookie, err := m.Create(context.Background(), diner)
	require.NoError(t, err)

	require.NoError(t, m.Destroy(context.Background(), cookie))
	require.NoError(t, m.Destroy(context.Background(), cookie))
	require.NoError(t, m.Destroy(context.Background(), ""))
	require.NoError(t, m.Destroy(context.Background(), "garbage"))
	assert.Equal(t, 0, store.Len())

	_, err = m.Resolve(context.Background(), cookie)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStoredHashDiffersFromCookieToken(t *testing.T) {
	m, store, _ := newTestManager(t)
	cookie, err := m.Create(context.Background(), diner)
	require.NoError(t, err)

	sid, err := m.parse(cookie, true)
	require.NoError(t, err)

	_, err = store.Find(context.Background(), sid)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Find(context.Background(), m.hashToken(sid))
	assert.NoError(t, err)
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(NewMemoryStore(), "", time.Hour)
	assert.Error(t, err)
}
