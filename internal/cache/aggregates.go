package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const keyPrefix = "e-ansimcare:agg"

// Aggregates caches reducer output per snapshot. A nil *Aggregates computes
// every time, so callers need no branch for "cache disabled".
type Aggregates struct {
	kv  KVStore
	ttl time.Duration
	log *zap.Logger
}

func NewAggregates(kv KVStore, ttl time.Duration, log *zap.Logger) *Aggregates {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregates{kv: kv, ttl: ttl, log: log}
}

func Key(snapshotID, name string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, snapshotID, name)
}

// JSON returns the cached encoding of name for the snapshot, or encodes
// compute() and stores it. Store failures are logged and never surface.
func (a *Aggregates) JSON(ctx context.Context, snapshotID, name string, compute func() any) ([]byte, error) {
	if a == nil || a.kv == nil {
		return json.Marshal(compute())
	}
	key := Key(snapshotID, name)

	val, err := a.kv.Get(ctx, key)
	switch {
	case err == nil:
		return []byte(val), nil
	case !errors.Is(err, ErrCacheMiss):
		a.log.Warn("cache get failed, computing", zap.String("key", key), zap.Error(err))
	}

	b, err := json.Marshal(compute())
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	if err := a.kv.Set(ctx, key, string(b), a.ttl); err != nil {
		a.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return b, nil
}
