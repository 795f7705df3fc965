// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tasks

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		raw         string
		expectedErr error
		check       func(*testing.T, Payload)
	}{
		{
			name: "welcome email",
			kind: KindWelcomeEmail,
			raw:  `{"email":"alice@example.com","name":"Alice"}`,
			check: func(t *testing.T, p Payload) {
				w, ok := p.(*WelcomeEmail)
				if !ok || w.Email != "alice@example.com" || w.Name != "Alice" {
					t.Errorf("unexpected payload %#v", p)
				}
			},
		},
		{
			name: "welcome email without address",
			kind: KindWelcomeEmail,
			raw:  `{}`,
		},
		{
			name:        "welcome email with bad address",
			kind:        KindWelcomeEmail,
			raw:         `{"email":"nope"}`,
			expectedErr: ErrInvalidPayload,
		},
		{
			name: "scheduled blog post",
			kind: KindScheduledBlogPost,
			raw:  `{"postId":"p-1","action":"publish"}`,
			check: func(t *testing.T, p Payload) {
				if b := p.(*ScheduledBlogPost); b.PostID != "p-1" || b.Action != ActionPublish {
					t.Errorf("unexpected payload %#v", b)
				}
			},
		},
		{
			name:        "scheduled blog post without post",
			kind:        KindScheduledBlogPost,
			raw:         `{"action":"publish"}`,
			expectedErr: ErrInvalidPayload,
		},
		{
			name: "cleanup defaults to thirty days",
			kind: KindCleanup,
			raw:  `{}`,
			check: func(t *testing.T, p Payload) {
				if d := p.(*Cleanup).Days(); d != 30 {
					t.Errorf("expected 30 days, got %d", d)
				}
			},
		},
		{
			name:        "cleanup with negative window",
			kind:        KindCleanup,
			raw:         `{"olderThanDays":-1}`,
			expectedErr: ErrInvalidPayload,
		},
		{
			name:        "notification without title",
			kind:        KindNotification,
			raw:         `{"message":"hi"}`,
			expectedErr: ErrInvalidPayload,
		},
		{
			name:        "missing payload",
			kind:        KindNotification,
			raw:         ``,
			expectedErr: ErrInvalidPayload,
		},
		{
			name:        "null payload",
			kind:        KindCleanup,
			raw:         `null`,
			expectedErr: ErrInvalidPayload,
		},
		{
			name:        "malformed payload",
			kind:        KindCleanup,
			raw:         `{"olderThanDays":"ten"}`,
			expectedErr: ErrInvalidPayload,
		},
		{
			name:        "unknown kind",
			kind:        Kind("send_fax"),
			raw:         `{}`,
			expectedErr: ErrUnknownKind,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, err := DecodePayload(test.kind, json.RawMessage(test.raw))

			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected %v, got %v", test.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Kind() != test.kind {
				t.Errorf("expected kind %s, got %s", test.kind, p.Kind())
			}
			if test.check != nil {
				test.check(t, p)
			}
		})
	}
}

func TestDelayUnmarshal(t *testing.T) {
	tests := []struct {
		raw       string
		expected  time.Duration
		expectErr bool
	}{
		{raw: `30`, expected: 30 * time.Second},
		{raw: `"45"`, expected: 45 * time.Second},
		{raw: `"1h30m"`, expected: 90 * time.Minute},
		{raw: `"soon"`, expectErr: true},
		{raw: `true`, expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			var d Delay
			err := json.Unmarshal([]byte(test.raw), &d)

			if test.expectErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if time.Duration(d) != test.expected {
				t.Errorf("expected %s, got %s", test.expected, time.Duration(d))
			}
		})
	}
}
