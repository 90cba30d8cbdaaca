package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefixDemo namespaces demo windows: vh:{demo key} -> "1" with PX = window.
const KeyPrefixDemo = "vh:"

// DemoTracker shares demo windows between API replicas.
type DemoTracker struct {
	rdb redis.Cmdable
}

func NewDemoTracker(rdb redis.Cmdable) *DemoTracker {
	return &DemoTracker{rdb: rdb}
}

func (t *DemoTracker) Start(ctx context.Context, key string, window time.Duration) (bool, error) {
	ok, err := t.rdb.SetNX(ctx, KeyPrefixDemo+key, 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("redis: demo start: %w", err)
	}
	return ok, nil
}

func (t *DemoTracker) Running(ctx context.Context, key string) (bool, error) {
	ok, err := Exists(ctx, t.rdb, KeyPrefixDemo+key)
	if err != nil {
		return false, fmt.Errorf("redis: demo running: %w", err)
	}
	return ok, nil
}
