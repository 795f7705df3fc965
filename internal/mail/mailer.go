// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
)

type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type MailerInterface interface {
	Send(context.Context, *Message) error
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	from   string
	logger logging.LoggerInterface
}

func (m *LogMailer) Send(ctx context.Context, msg *Message) error {
	if msg.From == "" {
		msg.From = m.from
	}

	m.logger.Infof("mail to %s from %s: %s", msg.To, msg.From, msg.Subject)

	return nil
}

func NewLogMailer(from string, logger logging.LoggerInterface) *LogMailer {
	m := new(LogMailer)

	m.from = from
	m.logger = logger

	return m
}

// WebhookMailer posts messages as JSON to a delivery endpoint.
type WebhookMailer struct {
	url  string
	from string
	http *http.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *WebhookMailer) Send(ctx context.Context, msg *Message) error {
	ctx, span := m.tracer.Start(ctx, "mail.WebhookMailer.Send")
	defer span.End()

	if msg.From == "" {
		msg.From = m.from
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode mail: %w", err)
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	r.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(r)
	if err != nil {
		_ = m.monitor.SetDependencyAvailability(map[string]string{"component": "mailer"}, 0)
		return apperrors.ExternalService("mailer unreachable: %v", err)
	}
	defer resp.Body.Close()

	_ = m.monitor.SetDependencyAvailability(map[string]string{"component": "mailer"}, 1)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.ExternalService("mailer returned status %d", resp.StatusCode)
	}

	m.logger.Debugf("mail to %s delivered", msg.To)

	return nil
}

func NewWebhookMailer(url, from string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *WebhookMailer {
	m := new(WebhookMailer)

	m.url = url
	m.from = from
	m.http = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}
