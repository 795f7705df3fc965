// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kv

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := s.Get(ctx, "k")
	if err != nil || v != "v1" {
		t.Fatalf("expected v1, got %q (%v)", v, err)
	}

	values, _ := s.MGet(ctx, "k", "missing")
	if !reflect.DeepEqual(values, []string{"v1", ""}) {
		t.Fatalf("unexpected MGet result %v", values)
	}
}

func TestMemoryStoreSetNX(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStoreWithClock(func() time.Time { return now })

	ok, _ := s.SetNX(ctx, "lock", "a", time.Minute)
	if !ok {
		t.Fatal("expected first SetNX to succeed")
	}

	ok, _ = s.SetNX(ctx, "lock", "b", time.Minute)
	if ok {
		t.Fatal("expected second SetNX to fail")
	}

	now = now.Add(2 * time.Minute)

	ok, _ = s.SetNX(ctx, "lock", "c", 0)
	if !ok {
		t.Fatal("expected SetNX to succeed after expiry")
	}

	if v, _ := s.Get(ctx, "lock"); v != "c" {
		t.Fatalf("expected c, got %q", v)
	}
}

func TestMemoryStoreCompareAndSwap(t *testing.T) {
	tests := []struct {
		name     string
		initial  *string
		prev     string
		expected bool
		value    string
	}{
		{name: "matching value", initial: ptr("a"), prev: "a", expected: true, value: "b"},
		{name: "stale value", initial: ptr("a"), prev: "x", expected: false, value: "a"},
		{name: "missing key", prev: "a", expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := context.Background()
			s := NewMemoryStore()

			if test.initial != nil {
				_ = s.Set(ctx, "k", *test.initial)
			}

			swapped, err := s.CompareAndSwap(ctx, "k", test.prev, "b")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if swapped != test.expected {
				t.Fatalf("expected %v, got %v", test.expected, swapped)
			}

			v, _ := s.Get(ctx, "k")
			if v != test.value {
				t.Fatalf("expected value %q, got %q", test.value, v)
			}
		})
	}
}

func TestMemoryStoreCompareAndSwapSingleWinner(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "k", "pending")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.CompareAndSwap(ctx, "k", "pending", "accepted"); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}

func TestMemoryStoreLists(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.RPush(ctx, "r", "a", "b")
	_ = s.RPush(ctx, "r", "c")
	_ = s.LPush(ctx, "l", "a", "b")
	_ = s.LPush(ctx, "l", "c")

	tests := []struct {
		name        string
		key         string
		start, stop int64
		expected    []string
	}{
		{name: "rpush keeps insertion order", key: "r", start: 0, stop: -1, expected: []string{"a", "b", "c"}},
		{name: "lpush puts newest first", key: "l", start: 0, stop: -1, expected: []string{"c", "b", "a"}},
		{name: "bounded range", key: "l", start: 0, stop: 1, expected: []string{"c", "b"}},
		{name: "negative start", key: "r", start: -2, stop: -1, expected: []string{"b", "c"}},
		{name: "range past end", key: "r", start: 5, stop: 10, expected: []string{}},
		{name: "missing list", key: "none", start: 0, stop: -1, expected: []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := s.LRange(ctx, test.key, test.start, test.stop)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, test.expected) {
				t.Fatalf("expected %v, got %v", test.expected, got)
			}
		})
	}

	_ = s.RPush(ctx, "r", "a")
	_ = s.LRem(ctx, "r", "a")

	got, _ := s.LRange(ctx, "r", 0, -1)
	if !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("expected all occurrences removed, got %v", got)
	}
}

func TestMemoryStoreSets(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.SAdd(ctx, "s", "b", "a", "b")
	_ = s.SAdd(ctx, "s", "c")
	_ = s.SRem(ctx, "s", "c", "missing")

	members, _ := s.SMembers(ctx, "s")
	if !reflect.DeepEqual(members, []string{"a", "b"}) {
		t.Fatalf("unexpected members %v", members)
	}

	_ = s.Delete(ctx, "s")

	members, _ = s.SMembers(ctx, "s")
	if len(members) != 0 {
		t.Fatalf("expected empty set after delete, got %v", members)
	}
}

func TestRangeBounds(t *testing.T) {
	tests := []struct {
		n           int
		start, stop int64
		from, to    int
		ok          bool
	}{
		{n: 5, start: 0, stop: -1, from: 0, to: 5, ok: true},
		{n: 5, start: 0, stop: 49, from: 0, to: 5, ok: true},
		{n: 5, start: -10, stop: 1, from: 0, to: 2, ok: true},
		{n: 5, start: 3, stop: 1, ok: false},
		{n: 0, start: 0, stop: -1, ok: false},
	}

	for _, test := range tests {
		from, to, ok := RangeBounds(test.n, test.start, test.stop)
		if ok != test.ok || (ok && (from != test.from || to != test.to)) {
			t.Errorf("RangeBounds(%d, %d, %d) = (%d, %d, %v)", test.n, test.start, test.stop, from, to, ok)
		}
	}
}

func ptr(s string) *string {
	return &s
}
