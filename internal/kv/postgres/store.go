// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/content-platform/internal/db"
	"github.com/canonical/content-platform/internal/kv"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
)

const (
	valuesTable = "kv_values"
	listsTable  = "kv_lists"
	setsTable   = "kv_sets"
)

var _ kv.Store = (*Store)(nil)

var notExpired = sq.Or{sq.Eq{"expires_at": nil}, sq.Expr("expires_at > now()")}

// Store maps the key-value primitives onto three tables, see the migrations
// package for the schema.
type Store struct {
	db db.DBClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.Get")
	defer span.End()

	var value string
	err := s.db.Statement(ctx).
		Select("value").
		From(valuesTable).
		Where(sq.Eq{"key": key}).
		Where(notExpired).
		QueryRowContext(ctx).
		Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.Set")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert(valuesTable).
		Columns("key", "value", "expires_at").
		Values(key, value, nil).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = NULL").
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

func (s *Store) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.SetNX")
	defer span.End()

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	// an expired row counts as absent, so it may be overwritten
	res, err := s.db.Statement(ctx).
		Insert(valuesTable).
		Columns("key", "value", "expires_at").
		Values(key, value, expiresAt).
		Suffix(
			"ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at " +
				"WHERE kv_values.expires_at IS NOT NULL AND kv_values.expires_at <= now()",
		).
		ExecContext(ctx)

	if err != nil {
		return false, fmt.Errorf("failed to setnx %s: %w", key, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (s *Store) CompareAndSwap(ctx context.Context, key, prev, next string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.CompareAndSwap")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update(valuesTable).
		Set("value", next).
		Where(sq.Eq{"key": key, "value": prev}).
		Where(notExpired).
		ExecContext(ctx)

	if err != nil {
		return false, fmt.Errorf("failed to swap %s: %w", key, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.Delete")
	defer span.End()

	if len(keys) == 0 {
		return nil
	}

	return s.db.WithTx(ctx, func(ctx context.Context) error {
		for _, table := range []string{valuesTable, listsTable, setsTable} {
			if _, err := s.db.Statement(ctx).Delete(table).Where(sq.Eq{"key": keys}).ExecContext(ctx); err != nil {
				return fmt.Errorf("failed to delete from %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Store) MGet(ctx context.Context, keys ...string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.MGet")
	defer span.End()

	ret := make([]string, len(keys))
	if len(keys) == 0 {
		return ret, nil
	}

	rows, err := s.db.Statement(ctx).
		Select("key", "value").
		From(valuesTable).
		Where(sq.Eq{"key": keys}).
		Where(notExpired).
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to mget: %w", err)
	}
	defer rows.Close()

	found := make(map[string]string, len(keys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		found[k] = v
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, k := range keys {
		ret[i] = found[k]
	}

	return ret, nil
}

func (s *Store) LPush(ctx context.Context, key string, values ...string) error {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.LPush")
	defer span.End()

	return s.push(ctx, key, true, values)
}

func (s *Store) RPush(ctx context.Context, key string, values ...string) error {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.RPush")
	defer span.End()

	return s.push(ctx, key, false, values)
}

// push appends values at either end of the list. Positions are allocated
// under a transaction scoped advisory lock on the key.
func (s *Store) push(ctx context.Context, key string, head bool, values []string) error {
	if len(values) == 0 {
		return nil
	}

	return s.db.WithTx(ctx, func(ctx context.Context) error {
		_, err := s.db.Statement(ctx).
			Select().
			Column(sq.Expr("pg_advisory_xact_lock(hashtext(?))", listsTable+":"+key)).
			ExecContext(ctx)

		if err != nil {
			return fmt.Errorf("failed to lock list %s: %w", key, err)
		}

		edge := "MAX(position)"
		if head {
			edge = "MIN(position)"
		}

		var current sql.NullInt64
		err = s.db.Statement(ctx).
			Select(edge).
			From(listsTable).
			Where(sq.Eq{"key": key}).
			QueryRowContext(ctx).
			Scan(&current)

		if err != nil {
			return fmt.Errorf("failed to read list %s: %w", key, err)
		}

		insert := s.db.Statement(ctx).
			Insert(listsTable).
			Columns("key", "position", "value")

		position := current.Int64
		for i, v := range values {
			switch {
			case !current.Valid && i == 0:
			case head:
				position--
			default:
				position++
			}
			insert = insert.Values(key, position, v)
		}

		if _, err := insert.ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to push to %s: %w", key, err)
		}

		return nil
	})
}

func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.LRange")
	defer span.End()

	var length int
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From(listsTable).
		Where(sq.Eq{"key": key}).
		QueryRowContext(ctx).
		Scan(&length)

	if err != nil {
		return nil, fmt.Errorf("failed to count list %s: %w", key, err)
	}

	from, to, ok := kv.RangeBounds(length, start, stop)
	if !ok {
		return []string{}, nil
	}

	rows, err := s.db.Statement(ctx).
		Select("value").
		From(listsTable).
		Where(sq.Eq{"key": key}).
		OrderBy("position").
		Offset(uint64(from)).
		Limit(uint64(to - from)).
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to range list %s: %w", key, err)
	}
	defer rows.Close()

	values := make([]string, 0, to-from)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

func (s *Store) LRem(ctx context.Context, key, value string) error {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.LRem")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete(listsTable).
		Where(sq.Eq{"key": key, "value": value}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to remove from list %s: %w", key, err)
	}

	return nil
}

func (s *Store) SAdd(ctx context.Context, key string, members ...string) error {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.SAdd")
	defer span.End()

	if len(members) == 0 {
		return nil
	}

	insert := s.db.Statement(ctx).
		Insert(setsTable).
		Columns("key", "member")

	for _, m := range members {
		insert = insert.Values(key, m)
	}

	if _, err := insert.Suffix("ON CONFLICT DO NOTHING").ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to add to set %s: %w", key, err)
	}

	return nil
}

func (s *Store) SRem(ctx context.Context, key string, members ...string) error {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.SRem")
	defer span.End()

	if len(members) == 0 {
		return nil
	}

	_, err := s.db.Statement(ctx).
		Delete(setsTable).
		Where(sq.Eq{"key": key, "member": members}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to remove from set %s: %w", key, err)
	}

	return nil
}

func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.SMembers")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("member").
		From(setsTable).
		Where(sq.Eq{"key": key}).
		OrderBy("member").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list set %s: %w", key, err)
	}
	defer rows.Close()

	members := make([]string, 0)
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "postgres.Store.Ping")
	defer span.End()

	return s.db.Ping(ctx)
}

func NewStore(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Store {
	s := new(Store)

	s.db = c

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
