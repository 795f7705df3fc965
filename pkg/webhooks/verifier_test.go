// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/canonical/content-platform/internal/apperrors"
	"github.com/canonical/content-platform/internal/logging"
	"github.com/canonical/content-platform/internal/tracing"
)

const (
	testCurrentKey = "sig_current"
	testNextKey    = "sig_next"
	testURL        = "https://app.example.com/qstash/webhook?taskId=t-1"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type tokenOptions struct {
	key     string
	issuer  string
	subject string
	body    string
	exp     time.Time
	method  jwt.SigningMethod
}

func bodyHash(body []byte) string {
	sum := sha256.Sum256(body)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func sign(t *testing.T, body []byte, mutate func(*tokenOptions)) string {
	t.Helper()

	o := &tokenOptions{
		key:     testCurrentKey,
		issuer:  "Upstash",
		subject: testURL,
		body:    bodyHash(body),
		exp:     testNow.Add(5 * time.Minute),
		method:  jwt.SigningMethodHS256,
	}
	if mutate != nil {
		mutate(o)
	}

	claims := &signatureClaims{
		Body: o.body,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    o.issuer,
			Subject:   o.subject,
			IssuedAt:  jwt.NewNumericDate(testNow),
			NotBefore: jwt.NewNumericDate(testNow),
			ExpiresAt: jwt.NewNumericDate(o.exp),
			ID:        "jti-1",
		},
	}

	token, err := jwt.NewWithClaims(o.method, claims).SignedString([]byte(o.key))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func newTestVerifier(current, next string) *Verifier {
	v := NewVerifier(current, next, tracing.NewNoopTracer(), logging.NewNoopLogger())
	v.now = func() time.Time { return testNow }
	return v
}

func TestVerifier_Verify(t *testing.T) {
	body := []byte(`{"taskId":"t-1","type":"cleanup_task","payload":{}}`)

	tests := []struct {
		name      string
		signature func(*testing.T) string
		body      []byte
		url       string
		keys      [2]string
		valid     bool
	}{
		{
			name:      "current key",
			signature: func(t *testing.T) string { return sign(t, body, nil) },
			url:       testURL,
			valid:     true,
		},
		{
			name: "next key during rotation",
			signature: func(t *testing.T) string {
				return sign(t, body, func(o *tokenOptions) { o.key = testNextKey })
			},
			url:   testURL,
			valid: true,
		},
		{
			name: "padded body hash",
			signature: func(t *testing.T) string {
				return sign(t, body, func(o *tokenOptions) { o.body += "=" })
			},
			url:   testURL,
			valid: true,
		},
		{
			name: "subject not checked without url",
			signature: func(t *testing.T) string {
				return sign(t, body, func(o *tokenOptions) { o.subject = "https://elsewhere.example.com" })
			},
			valid: true,
		},
		{
			name: "unknown key",
			signature: func(t *testing.T) string {
				return sign(t, body, func(o *tokenOptions) { o.key = "sig_attacker" })
			},
			url: testURL,
		},
		{
			name:      "tampered body",
			signature: func(t *testing.T) string { return sign(t, body, nil) },
			body:      []byte(`{"taskId":"t-2","type":"cleanup_task","payload":{}}`),
			url:       testURL,
		},
		{
			name: "expired",
			signature: func(t *testing.T) string {
				return sign(t, body, func(o *tokenOptions) { o.exp = testNow.Add(-time.Minute) })
			},
			url: testURL,
		},
		{
			name: "wrong issuer",
			signature: func(t *testing.T) string {
				return sign(t, body, func(o *tokenOptions) { o.issuer = "Someone" })
			},
			url: testURL,
		},
		{
			name: "wrong subject",
			signature: func(t *testing.T) string {
				return sign(t, body, func(o *tokenOptions) { o.subject = "https://elsewhere.example.com" })
			},
			url: testURL,
		},
		{
			name: "unexpected algorithm",
			signature: func(t *testing.T) string {
				return sign(t, body, func(o *tokenOptions) { o.method = jwt.SigningMethodHS512 })
			},
			url: testURL,
		},
		{
			name:      "missing signature",
			signature: func(*testing.T) string { return "" },
			url:       testURL,
		},
		{
			name:      "garbage",
			signature: func(*testing.T) string { return "not-a-jwt" },
			url:       testURL,
		},
		{
			name:      "no keys configured",
			signature: func(t *testing.T) string { return sign(t, body, nil) },
			url:       testURL,
			keys:      [2]string{"-", "-"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			current, next := testCurrentKey, testNextKey
			if test.keys[0] == "-" {
				current, next = "", ""
			}

			payload := body
			if test.body != nil {
				payload = test.body
			}

			err := newTestVerifier(current, next).Verify(context.Background(), test.signature(t), payload, test.url)

			if test.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, apperrors.ErrSignatureVerification) {
				t.Fatalf("expected signature verification error, got %v", err)
			}
		})
	}
}
