// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/canonical/content-platform/internal/config"
	"github.com/canonical/content-platform/internal/db"
	"github.com/canonical/content-platform/internal/kv"
	"github.com/canonical/content-platform/internal/kv/postgres"
	kvredis "github.com/canonical/content-platform/internal/kv/redis"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
)

const (
	backendMemory   = "memory"
	backendRedis    = "redis"
	backendPostgres = "postgres"
)

// newStore opens the key-value backend named by STORE_BACKEND. The returned
// function releases its connections.
func newStore(specs *config.EnvSpec, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (kv.Store, func(), error) {
	switch specs.StoreBackend {
	case backendMemory:
		logger.Warn("Using the in-memory store, state is lost on restart")
		return kv.NewMemoryStore(), func() {}, nil

	case backendRedis:
		store, err := kvredis.NewStore(
			kvredis.Config{
				URL:           specs.RedisURL,
				Addr:          specs.RedisAddr,
				Username:      specs.RedisUsername,
				Password:      specs.RedisPassword,
				DB:            specs.RedisDB,
				TLS:           specs.RedisTLS,
				TLSSkipVerify: specs.RedisTLSSkipVerify,
				KeyPrefix:     specs.RedisKeyPrefix,
			},
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case backendPostgres:
		dbClient, err := db.NewDBClient(
			db.Config{
				DSN:             specs.DSN,
				MaxConns:        specs.DBMaxConns,
				MinConns:        specs.DBMinConns,
				MaxConnLifetime: specs.DBMaxConnLifetime,
				MaxConnIdleTime: specs.DBMaxConnIdleTime,
				TracingEnabled:  specs.TracingEnabled,
			},
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database client: %v", err)
		}
		return postgres.NewStore(dbClient, tracer, monitor, logger), dbClient.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", specs.StoreBackend)
}
