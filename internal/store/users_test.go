package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/models"
	"restaurant/internal/testutil"
)

func TestFindOrCreateUserIsIdempotentPerEmail(t *testing.T) {
	db := testutil.OpenDB(t)
	s := New(db)
	ctx := context.Background()

	first, err := s.FindOrCreateUser(ctx, "diner@example.com", "Diner")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := s.FindOrCreateUser(ctx, "diner@example.com", "Someone Else")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Diner", second.Name)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "diner@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFindOrCreateUserReturnsPreexistingRow(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.SeedUser(t, db, 41, "early@example.com")

	user, err := New(db).FindOrCreateUser(context.Background(), "early@example.com", "Late")
	require.NoError(t, err)
	assert.EqualValues(t, 41, user.ID)
}

func TestFindOrCreateUserConcurrentFirstLogins(t *testing.T) {
	db := testutil.OpenDB(t)
	s := New(db)

	const logins = 8
	ids := make([]uint, logins)
	errs := make([]error, logins)

	var wg sync.WaitGroup
	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user, err := s.FindOrCreateUser(context.Background(), "rush@example.com", "Rush")
			ids[i], errs[i] = user.ID, err
		}(i)
	}
	wg.Wait()

	for i := range ids {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMenuListAndCreate(t *testing.T) {
	db := testutil.OpenDB(t)
	s := New(db)
	testutil.SeedMenuItem(t, db, 2, "Churros", "3.25")
	testutil.SeedMenuItem(t, db, 1, "Paella", "9.50")

	items, err := s.ListMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, 1, items[0].ID)

	require.NoError(t, s.CreateMenuItem(context.Background(), &models.MenuItem{Name: "Flan", Price: items[0].Price}))
	items, err = s.ListMenu(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
