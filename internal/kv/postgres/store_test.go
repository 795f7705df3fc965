// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package postgres

import (
	"os"
	"testing"

	"github.com/canonical/content-platform/internal/db"
	"github.com/canonical/content-platform/internal/kv/kvtest"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
)

// The database behind CONTENT_PLATFORM_TEST_DSN must already be migrated.
func TestStoreConformance(t *testing.T) {
	dsn := os.Getenv("CONTENT_PLATFORM_TEST_DSN")
	if dsn == "" {
		t.Skip("CONTENT_PLATFORM_TEST_DSN not set")
	}

	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	client, err := db.NewDBClient(db.Config{DSN: dsn, MaxConns: 4}, tracer, monitor, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	kvtest.Run(t, NewStore(client, tracer, monitor, logger))
}
