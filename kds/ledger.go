package kds

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-pos/models"
)

// Ledger remembers which realtime events were already applied.
type Ledger interface {
	// MarkProcessed records key and reports whether this is its first time.
	MarkProcessed(ctx context.Context, key, event string) (bool, error)
	// Forget drops key so a resend of an event that failed to apply runs again.
	Forget(ctx context.Context, key string) error
}

type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) MarkProcessed(ctx context.Context, key, event string) (bool, error) {
	rec := models.ProcessedEvent{EventKey: key, Event: event, CreatedAt: time.Now()}
	res := l.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
	if res.Error != nil {
		return false, fmt.Errorf("record event %s: %w", key, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (l *GormLedger) Forget(ctx context.Context, key string) error {
	if err := l.db.WithContext(ctx).Where("event_key = ?", key).Delete(&models.ProcessedEvent{}).Error; err != nil {
		return fmt.Errorf("forget event %s: %w", key, err)
	}
	return nil
}

// Prune deletes keys older than ttl so the table does not grow forever.
func (l *GormLedger) Prune(ctx context.Context, ttl time.Duration) (int64, error) {
	res := l.db.WithContext(ctx).
		Where("created_at < ?", time.Now().Add(-ttl)).
		Delete(&models.ProcessedEvent{})
	return res.RowsAffected, res.Error
}

type RedisLedger struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisLedger(client *redis.Client, ttl time.Duration) *RedisLedger {
	return &RedisLedger{Client: client, TTL: ttl}
}

func (l *RedisLedger) eventKey(key string) string {
	return "pos:event:" + key
}

func (l *RedisLedger) MarkProcessed(ctx context.Context, key, event string) (bool, error) {
	ok, err := l.Client.SetNX(ctx, l.eventKey(key), event, l.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("record event %s: %w", key, err)
	}
	return ok, nil
}

func (l *RedisLedger) Forget(ctx context.Context, key string) error {
	if err := l.Client.Del(ctx, l.eventKey(key)).Err(); err != nil {
		return fmt.Errorf("forget event %s: %w", key, err)
	}
	return nil
}
