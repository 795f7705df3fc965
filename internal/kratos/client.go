// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	ory "github.com/ory/client-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
)

// DirectoryInterface looks identities up in the identity provider.
type DirectoryInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	GetIdentityEmail(ctx context.Context, id string) (string, error)
}

var _ DirectoryInterface = (*Client)(nil)

type Client struct {
	client  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(kratosAdminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	conf.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	return &Client{
		client:  ory.NewAPIClient(conf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// GetIdentityIDByEmail returns the id of the identity registered with email,
// or an empty string when there is none.
func (c *Client) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetIdentityIDByEmail")
	defer span.End()

	// NOTE: we are setting an empty page token because of https://github.com/ory/sdk/issues/461
	ids, r, err := c.client.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", apperrors.ExternalService("failed to list identities: %v", err)
	}

	if len(ids) == 0 {
		return "", nil
	}

	return ids[0].Id, nil
}

// GetIdentityEmail returns the email trait of identity id.
func (c *Client) GetIdentityEmail(ctx context.Context, id string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetIdentityEmail")
	defer span.End()

	identity, r, err := c.client.IdentityAPI.GetIdentity(ctx, id).Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return "", apperrors.NotFound("identity %s", id)
		}
		return "", apperrors.ExternalService("failed to get identity: %v", err)
	}

	traits, ok := identity.Traits.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("identity %s has unexpected traits", id)
	}

	email, _ := traits["email"].(string)
	if email == "" {
		return "", apperrors.NotFound("email of identity %s", id)
	}

	return strings.ToLower(email), nil
}

// NoopDirectory is used when no identity provider is configured, it knows
// nobody.
type NoopDirectory struct{}

func NewNoopDirectory() *NoopDirectory {
	return new(NoopDirectory)
}

func (d *NoopDirectory) GetIdentityIDByEmail(context.Context, string) (string, error) {
	return "", nil
}

func (d *NoopDirectory) GetIdentityEmail(_ context.Context, id string) (string, error) {
	return "", apperrors.NotFound("identity %s", id)
}
