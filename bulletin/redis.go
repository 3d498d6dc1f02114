/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package bulletin

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisBoard is a Board backed by Redis, for parties running in
// different processes. Every topic is stored as a Redis hash mapping
// party indices to payloads.
type RedisBoard struct {
	client       *redis.Client
	prefix       string
	pollInterval time.Duration
	ttl          time.Duration
}

// RedisOption configures a RedisBoard.
type RedisOption func(*RedisBoard)

// WithPollInterval sets how often Collect checks whether all the parties
// posted. The default is 50ms.
func WithPollInterval(d time.Duration) RedisOption {
	return func(b *RedisBoard) {
		if d > 0 {
			b.pollInterval = d
		}
	}
}

// WithTTL sets the expiry of the topics. The default is one hour.
func WithTTL(d time.Duration) RedisOption {
	return func(b *RedisBoard) {
		if d > 0 {
			b.ttl = d
		}
	}
}

// NewRedisBoard connects to Redis and returns a board whose topics are
// stored under keys prefixed by name.
func NewRedisBoard(cfg RedisConfig, name string, opts ...RedisOption) (*RedisBoard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "redis ping")
	}

	b := &RedisBoard{
		client:       client,
		prefix:       "fecore:board:" + name + ":",
		pollInterval: 50 * time.Millisecond,
		ttl:          time.Hour,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

func (b *RedisBoard) key(topic string) string {
	return b.prefix + topic
}

// Post publishes payload with HSETNX, so that a party cannot overwrite
// its earlier post.
func (b *RedisBoard) Post(ctx context.Context, topic string, idx int, payload []byte) error {
	if err := checkIndex(idx); err != nil {
		return err
	}

	key := b.key(topic)
	ok, err := b.client.HSetNX(ctx, key, strconv.Itoa(idx), payload).Result()
	if err != nil {
		return errors.Wrap(err, "post")
	}
	if !ok {
		return errors.Wrapf(ErrDuplicate, "topic %q, index %d", topic, idx)
	}
	if err := b.client.Expire(ctx, key, b.ttl).Err(); err != nil {
		return errors.Wrap(err, "set topic expiry")
	}

	return nil
}

// Collect polls the length of the topic hash until at least n parties
// posted, and then reads the payloads of parties 0, ..., n-1.
func (b *RedisBoard) Collect(ctx context.Context, topic string, n int) ([][]byte, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	key := b.key(topic)
	fields := make([]string, n)
	for i := range fields {
		fields[i] = strconv.Itoa(i)
	}

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		cnt, err := b.client.HLen(ctx, key).Result()
		if err != nil {
			return nil, errors.Wrap(err, "collect")
		}
		if cnt >= int64(n) {
			res, ok, err := b.gather(ctx, key, fields)
			if err != nil {
				return nil, err
			}
			if ok {
				return res, nil
			}
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (b *RedisBoard) gather(ctx context.Context, key string, fields []string) ([][]byte, bool, error) {
	if len(fields) == 0 {
		return [][]byte{}, true, nil
	}

	vals, err := b.client.HMGet(ctx, key, fields...).Result()
	if err != nil {
		return nil, false, errors.Wrap(err, "collect")
	}

	res := make([][]byte, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, false, nil
		}
		res[i] = []byte(s)
	}

	return res, true, nil
}

// Clear removes topic from the board.
func (b *RedisBoard) Clear(ctx context.Context, topic string) error {
	return errors.Wrap(b.client.Del(ctx, b.key(topic)).Err(), "clear")
}

// Close closes the Redis connection.
func (b *RedisBoard) Close() error {
	return b.client.Close()
}
