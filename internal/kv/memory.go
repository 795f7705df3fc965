// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kv

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

type memoryValue struct {
	value     string
	expiresAt time.Time
}

func (v memoryValue) expired(now time.Time) bool {
	return !v.expiresAt.IsZero() && !v.expiresAt.After(now)
}

// MemoryStore keeps everything in process memory. It backs development runs
// and tests, state is lost on restart.
type MemoryStore struct {
	mu sync.Mutex

	values map[string]memoryValue
	lists  map[string][]string
	sets   map[string]map[string]struct{}

	now func() time.Time
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.lookup(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = memoryValue{value: value}
	return nil
}

func (s *MemoryStore) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(key); ok {
		return false, nil
	}

	v := memoryValue{value: value}
	if ttl > 0 {
		v.expiresAt = s.now().Add(ttl)
	}
	s.values[key] = v

	return true, nil
}

func (s *MemoryStore) CompareAndSwap(_ context.Context, key, prev, next string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.lookup(key)
	if !ok || current != prev {
		return false, nil
	}

	v := s.values[key]
	v.value = next
	s.values[key] = v

	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.values, k)
		delete(s.lists, k)
		delete(s.sets, k)
	}
	return nil
}

func (s *MemoryStore) MGet(_ context.Context, keys ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := make([]string, len(keys))
	for i, k := range keys {
		ret[i], _ = s.lookup(k)
	}
	return ret, nil
}

func (s *MemoryStore) LPush(_ context.Context, key string, values ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[key]
	for _, v := range values {
		list = append([]string{v}, list...)
	}
	s.lists[key] = list

	return nil
}

func (s *MemoryStore) RPush(_ context.Context, key string, values ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists[key] = append(s.lists[key], values...)
	return nil
}

func (s *MemoryStore) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[key]
	from, to, ok := RangeBounds(len(list), start, stop)
	if !ok {
		return []string{}, nil
	}

	return slices.Clone(list[from:to]), nil
}

func (s *MemoryStore) LRem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := slices.DeleteFunc(s.lists[key], func(v string) bool { return v == value })
	if len(list) == 0 {
		delete(s.lists, key)
		return nil
	}
	s.lists[key] = list

	return nil
}

func (s *MemoryStore) SAdd(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}

	return nil
}

func (s *MemoryStore) SRem(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.sets[key]
	for _, m := range members {
		delete(set, m)
	}
	if len(set) == 0 {
		delete(s.sets, key)
	}

	return nil
}

func (s *MemoryStore) SMembers(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		members = append(members, m)
	}
	sort.Strings(members)

	return members, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// lookup must be called with the lock held.
func (s *MemoryStore) lookup(key string) (string, bool) {
	v, ok := s.values[key]
	if !ok {
		return "", false
	}
	if v.expired(s.now()) {
		delete(s.values, key)
		return "", false
	}
	return v.value, true
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	s := new(MemoryStore)

	s.values = make(map[string]memoryValue)
	s.lists = make(map[string][]string)
	s.sets = make(map[string]map[string]struct{})
	s.now = now

	return s
}
