// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/tracing"
)

const (
	signatureIssuer = "Upstash"
	clockLeeway     = 5 * time.Second
)

var (
	errMissingSignature = errors.New("missing signature")
	errNoSigningKeys    = errors.New("no signing keys configured")
	errBodyMismatch     = errors.New("body hash mismatch")
)

type signatureClaims struct {
	Body string `json:"body"`
	jwt.RegisteredClaims
}

// Verifier checks the signature JWT the broker attaches to every callback,
// accepting the current key or the next one during a rotation.
type Verifier struct {
	currentKey string
	nextKey    string
	now        func() time.Time

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// Verify checks signature against body. When url is not empty the token
// subject must match it.
func (v *Verifier) Verify(ctx context.Context, signature string, body []byte, url string) error {
	_, span := v.tracer.Start(ctx, "webhooks.Verifier.Verify")
	defer span.End()

	signature = strings.TrimSpace(signature)
	if signature == "" {
		return fmt.Errorf("%w: %v", apperrors.ErrSignatureVerification, errMissingSignature)
	}

	var lastErr error = errNoSigningKeys
	for _, key := range []string{v.currentKey, v.nextKey} {
		if key == "" {
			continue
		}

		err := v.verifyWithKey(signature, key, body, url)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %v", apperrors.ErrSignatureVerification, lastErr)
}

func (v *Verifier) verifyWithKey(signature, key string, body []byte, url string) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(signatureIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockLeeway),
		jwt.WithTimeFunc(v.now),
	}

	if url != "" {
		opts = append(opts, jwt.WithSubject(url))
	}

	claims := new(signatureClaims)
	if _, err := jwt.ParseWithClaims(signature, claims, func(*jwt.Token) (any, error) {
		return []byte(key), nil
	}, opts...); err != nil {
		return err
	}

	sum := sha256.Sum256(body)
	expected := base64.RawURLEncoding.EncodeToString(sum[:])

	if strings.TrimRight(claims.Body, "=") != expected {
		return errBodyMismatch
	}

	return nil
}

func NewVerifier(currentKey, nextKey string, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Verifier {
	v := new(Verifier)

	v.currentKey = currentKey
	v.nextKey = nextKey
	v.now = time.Now

	v.tracer = tracer
	v.logger = logger

	return v
}
