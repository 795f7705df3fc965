// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"testing"

	"github.com/canonical/content-platform/internal/logging"
)

func TestMonitorMetrics(t *testing.T) {
	m := NewMonitor("test-service", logging.NewNoopLogger())

	if m.GetService() != "test-service" {
		t.Errorf("expected service name test-service, got %s", m.GetService())
	}

	if err := m.SetResponseTimeMetric(map[string]string{"route": "GET/accounts", "status": "200"}, 0.1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := m.SetDependencyAvailability(map[string]string{"component": "store"}, 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := m.IncTaskOutcome(map[string]string{"type": "notification", "status": "completed"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMonitorUninstantiated(t *testing.T) {
	m := new(Monitor)

	if err := m.SetResponseTimeMetric(nil, 0); err == nil {
		t.Error("expected error for missing histogram")
	}
	if err := m.SetDependencyAvailability(nil, 0); err == nil {
		t.Error("expected error for missing gauge")
	}
	if err := m.IncTaskOutcome(nil); err == nil {
		t.Error("expected error for missing counter")
	}
}
