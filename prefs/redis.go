/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "chessbreak:prefs:"

// Redis keeps preferences in a redis instance shared by every board replica.
type Redis struct {
	rdb *redis.Client
}

// NewRedis connects to url (redis:// or rediss://) and pings it.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("prefs.redis: bad url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("prefs.redis: ping: %w", err)
	}

	return &Redis{rdb: rdb}, nil
}

func (r *Redis) Get(ctx context.Context, key string, def int) int {
	v, err := r.rdb.Get(ctx, redisKeyPrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return def
	} else if err != nil {
		log.Printf("prefs.redis: failed to get %v: %v", key, err)
		return def
	}
	return v
}

func (r *Redis) Set(ctx context.Context, key string, value int) error {
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("prefs.redis: unable to set %v: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
