// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photographer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/photodir/internal/platform/constants"
)

// SnapshotStore is the subset of the Redis client used by [CachedSource].
type SnapshotStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedSource decorates a [Source] with a short-lived Redis snapshot.
//
// Each browse session still performs exactly one fetch; the snapshot only
// decides whether that fetch reaches the upstream. Cache failures never fail
// a fetch: they are logged and the upstream is used.
type CachedSource struct {
	next   Source
	store  SnapshotStore
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSource wraps next. name distinguishes snapshots of different
// upstreams sharing one Redis (usually the upstream URL).
func NewCachedSource(next Source, store SnapshotStore, name string, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		store:  store,
		key:    constants.RedisPrefixSourceSnapshot + name,
		ttl:    ttl,
		logger: logger,
	}
}

/*
Fetch returns the cached snapshot when present, otherwise fetches from the
wrapped source and stores the result.

Returns:
  - []Photographer: Collection in upstream order
  - error: Errors of the wrapped source, unchanged
*/
func (source *CachedSource) Fetch(ctx context.Context) ([]Photographer, error) {

	// 1. Try the snapshot
	collection, err := source.load(ctx)
	switch {
	case err == nil:
		snapshotLookups.WithLabelValues("hit").Inc()
		return collection, nil
	case errors.Is(err, redis.Nil):
		snapshotLookups.WithLabelValues("miss").Inc()
	default:
		snapshotLookups.WithLabelValues("error").Inc()
		source.logger.WarnContext(ctx, "source_snapshot_read_failed", slog.Any("error", err))
	}

	// 2. Fall through to the upstream
	collection, err = source.next.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Store for the next session
	if err := source.save(ctx, collection); err != nil {
		source.logger.WarnContext(ctx, "source_snapshot_write_failed", slog.Any("error", err))
	}

	return collection, nil
}

func (source *CachedSource) load(ctx context.Context) ([]Photographer, error) {
	payload, err := source.store.Get(ctx, source.key).Bytes()
	if err != nil {
		return nil, err
	}

	var collection []Photographer
	if err := json.Unmarshal(payload, &collection); err != nil {
		return nil, fmt.Errorf("redis_snapshot_decode_failed: %w", err)
	}
	if collection == nil {
		collection = []Photographer{}
	}
	return collection, nil
}

func (source *CachedSource) save(ctx context.Context, collection []Photographer) error {
	payload, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("redis_snapshot_encode_failed: %w", err)
	}

	if err := source.store.Set(ctx, source.key, payload, source.ttl).Err(); err != nil {
		return fmt.Errorf("redis_snapshot_set_failed: %w", err)
	}
	return nil
}
