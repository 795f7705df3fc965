// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package kvtest holds the behaviour every kv.Store backend must share.
package kvtest

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/content-platform/internal/kv"
)

// Run exercises store against the common contract. Keys are namespaced with a
// random prefix so the suite can run against a shared backend.
func Run(t *testing.T, store kv.Store) {
	t.Helper()

	prefix := "kvtest:" + uuid.NewString() + ":"
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		if _, err := store.Get(ctx, prefix+"missing"); !errors.Is(err, kv.ErrNotFound) {
			t.Fatalf("expected kv.ErrNotFound, got %v", err)
		}
	})

	t.Run("set overwrite", func(t *testing.T) {
		key := prefix + "value"

		_ = store.Set(ctx, key, "a")
		_ = store.Set(ctx, key, "b")

		if v, err := store.Get(ctx, key); err != nil || v != "b" {
			t.Fatalf("expected b, got %q (%v)", v, err)
		}
	})

	t.Run("setnx", func(t *testing.T) {
		key := prefix + "nx"

		first, err := store.SetNX(ctx, key, "a", time.Hour)
		if err != nil || !first {
			t.Fatalf("expected first claim to win, got %v (%v)", first, err)
		}

		second, err := store.SetNX(ctx, key, "b", time.Hour)
		if err != nil || second {
			t.Fatalf("expected second claim to lose, got %v (%v)", second, err)
		}
	})

	t.Run("compare and swap", func(t *testing.T) {
		key := prefix + "cas"
		_ = store.Set(ctx, key, "pending")

		if ok, _ := store.CompareAndSwap(ctx, key, "stale", "accepted"); ok {
			t.Fatal("expected stale swap to fail")
		}
		if ok, _ := store.CompareAndSwap(ctx, key, "pending", "accepted"); !ok {
			t.Fatal("expected swap to succeed")
		}
		if ok, _ := store.CompareAndSwap(ctx, prefix+"absent", "", "x"); ok {
			t.Fatal("expected swap on missing key to fail")
		}
	})

	t.Run("mget", func(t *testing.T) {
		_ = store.Set(ctx, prefix+"m1", "one")

		values, err := store.MGet(ctx, prefix+"m1", prefix+"m2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(values, []string{"one", ""}) {
			t.Fatalf("unexpected values %v", values)
		}
	})

	t.Run("lists", func(t *testing.T) {
		key := prefix + "list"

		_ = store.LPush(ctx, key, "a")
		_ = store.LPush(ctx, key, "b")
		_ = store.RPush(ctx, key, "c")

		got, _ := store.LRange(ctx, key, 0, -1)
		if !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
			t.Fatalf("unexpected list %v", got)
		}

		got, _ = store.LRange(ctx, key, 0, 0)
		if !reflect.DeepEqual(got, []string{"b"}) {
			t.Fatalf("unexpected head %v", got)
		}

		_ = store.LRem(ctx, key, "a")

		got, _ = store.LRange(ctx, key, 0, -1)
		if !reflect.DeepEqual(got, []string{"b", "c"}) {
			t.Fatalf("unexpected list after removal %v", got)
		}
	})

	t.Run("sets", func(t *testing.T) {
		key := prefix + "set"

		_ = store.SAdd(ctx, key, "x", "y", "x")
		_ = store.SRem(ctx, key, "y")

		members, _ := store.SMembers(ctx, key)
		sort.Strings(members)
		if !reflect.DeepEqual(members, []string{"x"}) {
			t.Fatalf("unexpected members %v", members)
		}
	})

	t.Run("delete", func(t *testing.T) {
		keys := []string{prefix + "value", prefix + "list", prefix + "set"}

		if err := store.Delete(ctx, keys...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := store.Get(ctx, keys[0]); !errors.Is(err, kv.ErrNotFound) {
			t.Fatalf("expected value to be gone, got %v", err)
		}
		if got, _ := store.LRange(ctx, keys[1], 0, -1); len(got) != 0 {
			t.Fatalf("expected list to be gone, got %v", got)
		}
		if got, _ := store.SMembers(ctx, keys[2]); len(got) != 0 {
			t.Fatalf("expected set to be gone, got %v", got)
		}
	})
}
