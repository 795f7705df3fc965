// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/monitoring"
	"github.com/canonical/content-platform/internal/tracing"
)

// NewJWTAuthenticator initializes a JWT token verifier, using OIDC discovery
// unless a JWKS URL is given.
func NewJWTAuthenticator(
	ctx context.Context,
	issuer string,
	jwksURL string,
	clientID string,
	requiredScope string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (TokenVerifierInterface, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required for JWT authentication")
	}

	if jwksURL != "" {
		logger.Infof("Using manual JWKS URL: %s", jwksURL)
		verifier := NewVerifierWithJWKS(ctx, issuer, jwksURL, oidcConfig(clientID))
		return NewJWTVerifierDirect(verifier, requiredScope, tracer, monitor, logger), nil
	}

	logger.Infof("Using OIDC discovery for issuer: %s", issuer)
	provider, err := NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}

	return NewJWTVerifier(provider, clientID, requiredScope, tracer, monitor, logger), nil
}
