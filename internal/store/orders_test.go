package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant/internal/models"
	"restaurant/internal/testutil"
)

func TestCreateOrderSumsValidLinesAndSkipsInvalid(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.SeedUser(t, db, 7, "diner@example.com")
	testutil.SeedMenuItem(t, db, 1, "Paella", "9.50")
	testutil.SeedMenuItem(t, db, 2, "Churros", "3.25")
	s := New(db)

	created, err := s.CreateOrder(context.Background(), 7, []models.OrderLineRequest{
		{MenuID: 1, Quantity: 2},
		{MenuID: 999, Quantity: 1},
		{MenuID: 2, Quantity: 0},
		{MenuID: 2, Quantity: -3},
		{MenuID: -1, Quantity: 1},
		{MenuID: 0, Quantity: 1},
		{MenuID: 2, Quantity: 1},
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("22.25").Equal(created.Order.Total), "total = %s", created.Order.Total)
	assert.Equal(t, models.StatusPending, created.Order.Status)
	assert.Equal(t, []models.OrderLineRequest{{MenuID: 1, Quantity: 2}, {MenuID: 2, Quantity: 1}}, created.Accepted)

	stored, err := s.GetOrder(context.Background(), created.Order.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("22.25").Equal(stored.Total))
	assert.EqualValues(t, 7, stored.UserID)
	assert.False(t, stored.HiddenFromAdmin)

	var count int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", created.Order.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateOrderWithNoValidLinesKeepsZeroTotal(t *testing.T) {
	db := testutil.OpenDB(t)
	s := New(db)

	created, err := s.CreateOrder(context.Background(), 3, []models.OrderLineRequest{{MenuID: 42, Quantity: 1}})
	require.NoError(t, err)
	assert.True(t, created.Order.Total.IsZero())
	assert.Empty(t, created.Accepted)
}

func TestCreateOrderRollsBackWhenItemInsertFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders`").WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT \\* FROM `menu`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(1, "Paella", "9.50"))
	mock.ExpectExec("INSERT INTO `order_items`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = New(db).CreateOrder(context.Background(), 7, []models.OrderLineRequest{{MenuID: 1, Quantity: 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderLinesComputeLineTotals(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.SeedMenuItem(t, db, 1, "Paella", "9.50")
	s := New(db)

	created, err := s.CreateOrder(context.Background(), 7, []models.OrderLineRequest{{MenuID: 1, Quantity: 3}})
	require.NoError(t, err)

	lines, err := s.OrderLines(context.Background(), created.Order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Paella", lines[0].Name)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("28.50").Equal(lines[0].LineTotal))
}

func TestGetOrderMissingReturnsErrNotFound(t *testing.T) {
	s := New(testutil.OpenDB(t))

	_, err := s.GetOrder(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersByUserNewestFirst(t *testing.T) {
	db := testutil.OpenDB(t)
	s := New(db)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, uid := range []uint{7, 8, 7} {
		require.NoError(t, db.Create(&models.Order{
			UserID:    uid,
			Total:     decimal.NewFromInt(int64(i + 1)),
			Status:    models.StatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	orders, err := s.ListOrdersByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.EqualValues(t, 3, orders[0].ID)
	assert.EqualValues(t, 1, orders[1].ID)
}

func TestListAdminOrdersExcludesHiddenAndJoinsEmail(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.SeedUser(t, db, 7, "diner@example.com")
	s := New(db)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	visible := models.Order{UserID: 7, Total: decimal.NewFromInt(5), Status: models.StatusPending, CreatedAt: base}
	newer := models.Order{UserID: 7, Total: decimal.NewFromInt(6), Status: models.StatusConfirmed, CreatedAt: base.Add(time.Hour)}
	hidden := models.Order{UserID: 7, Total: decimal.NewFromInt(9), Status: models.StatusCompleted, CreatedAt: base.Add(2 * time.Hour)}
	for _, o := range []*models.Order{&visible, &newer, &hidden} {
		require.NoError(t, db.Create(o).Error)
	}
	require.NoError(t, s.HideOrder(context.Background(), hidden.ID))

	orders, err := s.ListAdminOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, visible.ID, orders[1].ID)
	assert.Equal(t, "diner@example.com", orders[0].Email)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	s := New(db)
	created, err := s.CreateOrder(context.Background(), 7, []models.OrderLineRequest{{MenuID: 1, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, s.UpdateOrderStatus(context.Background(), created.Order.ID, models.StatusCompleted))
	require.NoError(t, s.UpdateOrderStatus(context.Background(), created.Order.ID, models.StatusCompleted))

	stored, err := s.GetOrder(context.Background(), created.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)

	assert.ErrorIs(t, s.UpdateOrderStatus(context.Background(), 999, models.StatusPending), ErrNotFound)
}

func TestHideOrderRequiresCompleted(t *testing.T) {
	db := testutil.OpenDB(t)
	s := New(db)
	created, err := s.CreateOrder(context.Background(), 7, []models.OrderLineRequest{{MenuID: 1, Quantity: 1}})
	require.NoError(t, err)

	assert.ErrorIs(t, s.HideOrder(context.Background(), created.Order.ID), ErrNotCompleted)
	assert.ErrorIs(t, s.HideOrder(context.Background(), 999), ErrNotFound)

	require.NoError(t, s.UpdateOrderStatus(context.Background(), created.Order.ID, models.StatusCompleted))
	require.NoError(t, s.HideOrder(context.Background(), created.Order.ID))
	require.NoError(t, s.HideOrder(context.Background(), created.Order.ID))

	stored, err := s.GetOrder(context.Background(), created.Order.ID)
	require.NoError(t, err)
	assert.True(t, stored.HiddenFromAdmin)
}
