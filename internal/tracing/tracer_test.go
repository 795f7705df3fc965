// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"testing"
)

func TestNoopTracerStart(t *testing.T) {
	tracer := NewNoopTracer()

	ctx, span := tracer.Start(context.Background(), "tracing.Test")
	defer span.End()

	if ctx == nil {
		t.Fatal("expected a context")
	}
	if span.SpanContext().IsSampled() {
		t.Error("noop span should not be sampled")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(true, "localhost:4317", "", 0.5, nil)

	if !cfg.Enabled {
		t.Error("expected config to be enabled")
	}
	if cfg.OtelGRPCEndpoint != "localhost:4317" {
		t.Errorf("unexpected grpc endpoint %q", cfg.OtelGRPCEndpoint)
	}
	if cfg.SampleRatio != 0.5 {
		t.Errorf("unexpected sample ratio %v", cfg.SampleRatio)
	}
}
