// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kv_test

import (
	"testing"

	"github.com/canonical/content-platform/internal/kv"
	"github.com/canonical/content-platform/internal/kv/kvtest"
)

func TestMemoryStoreConformance(t *testing.T) {
	kvtest.Run(t, kv.NewMemoryStore())
}
