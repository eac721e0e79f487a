package orderlog

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/database"
	"restaurant/internal/models"
)

func TestMongoStoreRoundTrip(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	client, err := database.Connect(uri)
	require.NoError(t, err)
	db := client.Database(fmt.Sprintf("orderlog_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	s := NewMongoStore(db)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, models.OrderLogEntry{
		OrderID: 5,
		UserID:  7,
		Action:  models.LogActionOrderCreated,
		Message: "Order #5 placed",
		Items:   []models.OrderLineRequest{{MenuID: 1, Quantity: 2}},
	}))
	require.NoError(t, s.Append(ctx, models.OrderLogEntry{OrderID: 6, UserID: 7, Action: models.LogActionOrderCreated}))

	docs, err := s.ListByOrder(ctx, 5)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.NotContains(t, docs[0], "_id")
	assert.Equal(t, "Order #5 placed", docs[0]["message"])

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
