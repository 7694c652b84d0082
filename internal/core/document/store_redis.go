// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/dtakit/internal/dta/charset"
	"github.com/taibuivan/dtakit/internal/platform/constants"
)

// scanBatch is the COUNT hint of the SCAN loop in [RedisCache.Invalidate].
const scanBatch = 100

// Fields of the Redis hash holding a rendering.
const (
	renderFieldBody    = "body"
	renderFieldCharset = "charset"
)

// RedisCache implements [Cache] using Redis.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache creates a cache whose entries expire after ttl.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func renderKey(hash, variant string) string {
	return fmt.Sprintf("%s%s:%s", constants.RedisPrefixRender, hash, variant)
}

func hashKey(documentID string) string {
	return constants.RedisPrefixHash + documentID
}

// GetRender returns a cached rendering. An entry without a known charset
// is reported as a failure.
func (cache *RedisCache) GetRender(context context.Context, hash, variant string) (CachedRender, bool, error) {
	fields, err := cache.client.HGetAll(context, renderKey(hash, variant)).Result()
	if err != nil {
		return CachedRender{}, false, fmt.Errorf("redis_render_get_failed: %w", err)
	}
	if len(fields) == 0 {
		return CachedRender{}, false, nil
	}

	cs, ok := charset.Parse(fields[renderFieldCharset])
	if !ok {
		return CachedRender{}, false, fmt.Errorf("redis_render_get_failed: unknown charset %q", fields[renderFieldCharset])
	}
	return CachedRender{Body: []byte(fields[renderFieldBody]), Charset: cs}, true, nil
}

// SetRender stores a rendering and its charset as one expiring hash.
func (cache *RedisCache) SetRender(context context.Context, hash, variant string, entry CachedRender) error {
	key := renderKey(hash, variant)
	_, err := cache.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.HSet(context, key, renderFieldCharset, string(entry.Charset), renderFieldBody, entry.Body)
		pipe.Expire(context, key, cache.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_render_set_failed: %w", err)
	}
	return nil
}

// GetHash returns the cached canonical hash of a document.
func (cache *RedisCache) GetHash(context context.Context, documentID string) (string, bool, error) {
	hash, err := cache.client.Get(context, hashKey(documentID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_hash_get_failed: %w", err)
	}
	return hash, true, nil
}

// SetHash stores the canonical hash of a document.
func (cache *RedisCache) SetHash(context context.Context, documentID, hash string) error {
	if err := cache.client.Set(context, hashKey(documentID), hash, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_hash_set_failed: %w", err)
	}
	return nil
}

/*
Invalidate drops the hash entry of a document and the renderings of its
previous content.

Description: Render keys are found with SCAN on the hash prefix, never KEYS,
so large caches are walked in batches.
*/
func (cache *RedisCache) Invalidate(context context.Context, documentID, previousHash string) error {
	if err := cache.client.Del(context, hashKey(documentID)).Err(); err != nil {
		return fmt.Errorf("redis_hash_del_failed: %w", err)
	}
	if previousHash == "" {
		return nil
	}

	pattern := renderKey(previousHash, "*")
	iterator := cache.client.Scan(context, 0, pattern, scanBatch).Iterator()

	var keys []string
	for iterator.Next(context) {
		keys = append(keys, iterator.Val())
	}
	if err := iterator.Err(); err != nil {
		return fmt.Errorf("redis_render_scan_failed: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := cache.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_render_del_failed: %w", err)
	}
	return nil
}
