package kds

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
)

func TestGormLedger(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProcessedEvent{}))

	l := NewGormLedger(db)
	ctx := context.Background()

	first, err := l.MarkProcessed(ctx, "order_status_update:abc", "order_status_update")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := l.MarkProcessed(ctx, "order_status_update:abc", "order_status_update")
	require.NoError(t, err)
	assert.False(t, again)

	db.Model(&models.ProcessedEvent{}).Where("event_key = ?", "order_status_update:abc").
		Update("created_at", time.Now().Add(-48*time.Hour))
	n, err := l.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	first, err = l.MarkProcessed(ctx, "order_status_update:abc", "order_status_update")
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, l.Forget(ctx, "order_status_update:abc"))
	first, err = l.MarkProcessed(ctx, "order_status_update:abc", "order_status_update")
	require.NoError(t, err)
	assert.True(t, first, "a forgotten key counts as new")
}

func TestRedisLedger(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	l := NewRedisLedger(rdb, time.Minute)
	ctx := context.Background()

	first, err := l.MarkProcessed(ctx, "new_order:1", "new_order")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := l.MarkProcessed(ctx, "new_order:1", "new_order")
	require.NoError(t, err)
	assert.False(t, again)
	assert.True(t, mr.Exists("pos:event:new_order:1"))

	mr.FastForward(2 * time.Minute)
	first, err = l.MarkProcessed(ctx, "new_order:1", "new_order")
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, l.Forget(ctx, "new_order:1"))
	assert.False(t, mr.Exists("pos:event:new_order:1"))
}

func TestRedisLedgerUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close()

	_, err := NewRedisLedger(rdb, time.Minute).MarkProcessed(context.Background(), "k", "new_order")
	assert.Error(t, err)
}
