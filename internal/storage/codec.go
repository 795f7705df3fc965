// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/canonical/content-platform/internal/kv"
)

// Raw pairs a decoded record with the exact encoding it was read from, the
// encoding is the expected value of a later CompareAndSwap.
type Raw[T any] struct {
	Value   *T
	Encoded string
}

func load[T any](ctx context.Context, store kv.Store, key, what string) (*Raw[T], error) {
	encoded, err := store.Get(ctx, key)
	if err != nil {
		return nil, wrapNotFound(err, what)
	}

	v := new(T)
	if err := json.Unmarshal([]byte(encoded), v); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", what, ErrCorrupt, err)
	}

	return &Raw[T]{Value: v, Encoded: encoded}, nil
}

func save(ctx context.Context, store kv.Store, key string, v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, string(encoded))
}

// swap writes next over key only if key still holds prev.
func swap(ctx context.Context, store kv.Store, key, prev string, next any) (string, bool, error) {
	encoded, err := json.Marshal(next)
	if err != nil {
		return "", false, err
	}

	ok, err := store.CompareAndSwap(ctx, key, prev, string(encoded))
	if err != nil {
		return "", false, err
	}

	return string(encoded), ok, nil
}

// loadMany decodes the records behind keys, skipping missing or corrupt
// entries. The returned slice keeps the order of keys.
func loadMany[T any](ctx context.Context, store kv.Store, keys []string) ([]*T, []int, error) {
	if len(keys) == 0 {
		return []*T{}, nil, nil
	}

	values, err := store.MGet(ctx, keys...)
	if err != nil {
		return nil, nil, err
	}

	ret := make([]*T, 0, len(values))
	skipped := make([]int, 0)
	for i, encoded := range values {
		if encoded == "" {
			skipped = append(skipped, i)
			continue
		}

		v := new(T)
		if err := json.Unmarshal([]byte(encoded), v); err != nil {
			skipped = append(skipped, i)
			continue
		}
		ret = append(ret, v)
	}

	return ret, skipped, nil
}

func encode(v any) (string, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decode(encoded string, v any) error {
	if err := json.Unmarshal([]byte(encoded), v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}
