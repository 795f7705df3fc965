// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint  string  `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint  string  `envconfig:"otel_http_endpoint"`
	TracingEnabled    bool    `envconfig:"tracing_enabled" default:"true"`
	TracingSampleRate float64 `envconfig:"tracing_sample_rate" default:"1"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port      int    `envconfig:"port" default:"8080"`
	PublicURL string `envconfig:"public_url" required:"true"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	// StoreBackend selects the key-value store: memory, redis or postgres.
	StoreBackend string `envconfig:"store_backend" default:"redis"`

	RedisURL           string `envconfig:"redis_url"`
	RedisAddr          string `envconfig:"redis_addr" default:"127.0.0.1:6379"`
	RedisUsername      string `envconfig:"redis_username"`
	RedisPassword      string `envconfig:"redis_password"`
	RedisDB            int    `envconfig:"redis_db" default:"0"`
	RedisTLS           bool   `envconfig:"redis_tls" default:"false"`
	RedisTLSSkipVerify bool   `envconfig:"redis_tls_skip_verify" default:"false"`
	RedisKeyPrefix     string `envconfig:"redis_key_prefix"`

	DSN               string        `envconfig:"DSN"`
	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	AuthenticationEnabled bool   `envconfig:"authentication_enabled" default:"true"`
	OIDCIssuer            string `envconfig:"oidc_issuer"`
	OIDCJWKSURL           string `envconfig:"oidc_jwks_url"`
	OIDCClientID          string `envconfig:"oidc_client_id"`
	OIDCRequiredScope     string `envconfig:"oidc_required_scope"`

	KratosAdminURL string `envconfig:"kratos_admin_url"`

	InvitationLifetime time.Duration `envconfig:"invitation_lifetime" default:"168h"`
	TaskListLimit      int           `envconfig:"task_list_limit" default:"50"`

	QStashURL               string `envconfig:"qstash_url" default:"https://qstash.upstash.io"`
	QStashToken             string `envconfig:"qstash_token"`
	QStashCurrentSigningKey string `envconfig:"qstash_current_signing_key"`
	QStashNextSigningKey    string `envconfig:"qstash_next_signing_key"`
	QStashRetries           int    `envconfig:"qstash_retries" default:"3"`

	// MailerWebhookURL receives outgoing emails as JSON, emails are only
	// logged when empty.
	MailerWebhookURL string `envconfig:"mailer_webhook_url"`
	MailerFrom       string `envconfig:"mailer_from" default:"no-reply@example.com"`
}
