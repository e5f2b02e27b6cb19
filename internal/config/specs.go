// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// Billing knobs. Thresholds are currency units, the rate is per minute.
	DefaultRatePerMinute      float64       `envconfig:"default_rate_per_minute" default:"0.02"`
	DefaultWarningThreshold   float64       `envconfig:"default_warning_threshold" default:"10"`
	CriticalBalanceThreshold  float64       `envconfig:"critical_balance_threshold" default:"1"`
	DeductionMaxAttempts      int           `envconfig:"deduction_max_attempts" default:"4"`
	DeductionRetryBaseDelay   time.Duration `envconfig:"deduction_retry_base_delay" default:"300ms"`
	InvitationLifetime        time.Duration `envconfig:"invitation_lifetime" default:"168h"`
	ProviderWebhookSecret     string        `envconfig:"provider_webhook_secret"`
	DefaultCompanySeatLimit   int           `envconfig:"default_company_seat_limit" default:"5"`
	SignupCreditAmount        float64       `envconfig:"signup_credit_amount" default:"0"`

	AuthenticationEnabled bool     `envconfig:"authentication_enabled" default:"false"`
	OIDCIssuer            string   `envconfig:"oidc_issuer"`
	JWKSURL               string   `envconfig:"jwks_url"`
	AllowedSubjects       []string `envconfig:"allowed_subjects"`
	RequiredScope         string   `envconfig:"required_scope"`
}
