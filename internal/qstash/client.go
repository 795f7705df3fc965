// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package qstash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
)

const (
	defaultBaseURL = "https://qstash.upstash.io"
	maxErrorBody   = 512
)

// PublishRequest is one message handed to the broker. At most one of Delay
// and NotBefore is honoured, NotBefore wins.
type PublishRequest struct {
	Destination     string
	Body            []byte
	Delay           time.Duration
	NotBefore       *time.Time
	DeduplicationID string
}

type publishResponse struct {
	MessageID string `json:"messageId"`
}

// Client talks to the QStash v2 REST API.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	retries int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Publish enqueues req and returns the broker message id.
func (c *Client) Publish(ctx context.Context, req *PublishRequest) (string, error) {
	ctx, span := c.tracer.Start(ctx, "qstash.Client.Publish")
	defer span.End()

	if c.token == "" {
		return "", apperrors.ExternalService("broker token not configured")
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/publish/"+req.Destination, bytes.NewReader(req.Body))
	if err != nil {
		return "", fmt.Errorf("failed to build publish request: %w", err)
	}

	r.Header.Set("Authorization", "Bearer "+c.token)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Upstash-Retries", strconv.Itoa(c.retries))

	switch {
	case req.NotBefore != nil:
		r.Header.Set("Upstash-Not-Before", strconv.FormatInt(req.NotBefore.Unix(), 10))
	case req.Delay > 0:
		r.Header.Set("Upstash-Delay", fmt.Sprintf("%ds", int64(req.Delay.Seconds())))
	}

	if req.DeduplicationID != "" {
		r.Header.Set("Upstash-Deduplication-Id", req.DeduplicationID)
	}

	resp, err := c.http.Do(r)
	if err != nil {
		c.setAvailability(false)
		return "", apperrors.ExternalService("broker unreachable: %v", err)
	}
	defer resp.Body.Close()

	c.setAvailability(true)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", apperrors.ExternalService("broker rejected message with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	out := new(publishResponse)
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "", apperrors.ExternalService("failed to decode broker response: %v", err)
	}

	if out.MessageID == "" {
		return "", apperrors.ExternalService("broker response has no message id")
	}

	return out.MessageID, nil
}

func (c *Client) setAvailability(up bool) {
	v := 0.0
	if up {
		v = 1
	}
	_ = c.monitor.SetDependencyAvailability(map[string]string{"component": "qstash"}, v)
}

func NewClient(baseURL, token string, retries int, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	c := new(Client)

	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	c.http = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	c.token = token
	c.retries = retries

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
