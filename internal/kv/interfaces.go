// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kv

import (
	"context"
	"time"
)

// Store is an opaque key-value store. Every operation is atomic on a single
// key only, there are no transactions spanning keys.
type Store interface {
	// Get returns ErrNotFound when key holds no value.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetNX writes value only if key is absent, reporting whether it did.
	// A zero ttl keeps the key forever.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// CompareAndSwap replaces the value of key with next only if it currently
	// equals prev, reporting whether the swap happened.
	CompareAndSwap(ctx context.Context, key, prev, next string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	// MGet returns one entry per key, empty for missing keys.
	MGet(ctx context.Context, keys ...string) ([]string, error)

	LPush(ctx context.Context, key string, values ...string) error
	RPush(ctx context.Context, key string, values ...string) error
	// LRange follows Redis semantics: inclusive bounds, negative indexes
	// count from the tail.
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	// LRem removes every occurrence of value from the list.
	LRem(ctx context.Context, key, value string) error

	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)

	Ping(ctx context.Context) error
}
