// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appID = "content-platform"

// SecurityLogger writes security events on a dedicated named logger so they
// can be routed separately from application logs.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.event("sys_startup", fmt.Sprintf("%s is starting", appID), zap.InfoLevel)
}

func (s *SecurityLogger) SystemShutdown() {
	s.event("sys_shutdown", fmt.Sprintf("%s is shutting down", appID), zap.InfoLevel)
}

func (s *SecurityLogger) AuthnFailure(reason string) {
	s.event("authn_login_fail", reason, zap.WarnLevel)
}

func (s *SecurityLogger) AuthzFailure(userID, resource string) {
	s.event(
		fmt.Sprintf("authz_fail:%s,%s", userID, resource),
		fmt.Sprintf("user %s attempted to access %s without entitlement", userID, resource),
		zap.WarnLevel,
	)
}

func (s *SecurityLogger) SignatureFailure(source, reason string) {
	s.event(
		fmt.Sprintf("input_validation_fail:%s", source),
		fmt.Sprintf("signature verification failed: %s", reason),
		zap.WarnLevel,
	)
}

func (s *SecurityLogger) event(name, description string, level zapcore.Level) {
	if ce := s.l.Check(level, description); ce != nil {
		ce.Write(
			zap.String("type", "security"),
			zap.String("appid", appID),
			zap.String("event", name),
		)
	}
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l.Named("security")}
}
