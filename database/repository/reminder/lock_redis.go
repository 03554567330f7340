package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"lunchbox/models"

	"github.com/go-redis/redis/v8"
)

const (
	reminderLockPrefix = "reminder:fired:"
	// reminderLockTTL outlives the calendar day in any timezone.
	reminderLockTTL = 48 * time.Hour
)

// lockClient is the part of *redis.Client the claimer uses.
type lockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisLockClaimer claims with SETNX on a key per (kind, date).
type RedisLockClaimer struct {
	client lockClient
}

func NewRedisLockClaimer(client *redis.Client) MarkerClaimer {
	return &RedisLockClaimer{client: client}
}

func lockKey(kind models.ReminderKind, date string) string {
	return reminderLockPrefix + string(kind) + ":" + date
}

func (c *RedisLockClaimer) Claim(ctx context.Context, kind models.ReminderKind, date string, firedAt time.Time) error {
	ok, err := c.client.SetNX(ctx, lockKey(kind, date), firedAt.Format(time.RFC3339), reminderLockTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to claim %s for %s: %w: %v", kind, date, models.ErrStore, err)
	}
	if !ok {
		return models.ErrAlreadyClaimed
	}
	return nil
}

func (c *RedisLockClaimer) Release(ctx context.Context, kind models.ReminderKind, date string) error {
	if err := c.client.Del(ctx, lockKey(kind, date)).Err(); err != nil {
		return fmt.Errorf("failed to release %s for %s: %w: %v", kind, date, models.ErrStore, err)
	}
	return nil
}
