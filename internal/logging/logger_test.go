// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"
)

func TestDebugLogger(t *testing.T) {
	logger := NewLogger("DEBUG")
	if logger.Level().String() != "debug" {
		t.Errorf("expected debug level, got %s", logger.Level())
	}
}

func TestInvalidLevelFallsBackToError(t *testing.T) {
	logger := NewLogger("invalid")
	if logger.Level().String() != "error" {
		t.Errorf("expected error level, got %s", logger.Level())
	}
}

func TestNoopLoggerSecurity(t *testing.T) {
	logger := NewNoopLogger()

	logger.Security().SystemStartup()
	logger.Security().AuthzFailure("user-1", "account:1")
	logger.Security().SignatureFailure("qstash", "bad signature")
	logger.Security().SystemShutdown()
}
