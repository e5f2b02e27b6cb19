// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/drscale/console-service/internal/db"
	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/monitoring"
	"github.com/drscale/console-service/internal/storage"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/pkg/authentication"
	"github.com/drscale/console-service/pkg/billing"
	"github.com/drscale/console-service/pkg/calls"
	"github.com/drscale/console-service/pkg/invites"
	"github.com/drscale/console-service/pkg/metrics"
	"github.com/drscale/console-service/pkg/status"
	"github.com/drscale/console-service/pkg/team"
	"github.com/drscale/console-service/pkg/webhooks"
)

// Config carries the billing and provisioning knobs the API surface needs.
type Config struct {
	DefaultRatePerMinute     float64
	DefaultWarningThreshold  float64
	CriticalBalanceThreshold float64
	DeductionMaxAttempts     int
	DeductionRetryBaseDelay  time.Duration
	InvitationLifetime       time.Duration
	DefaultCompanySeatLimit  int
	SignupCreditAmount       float64
	ProviderWebhookSecret    string
}

func NewRouter(
	cfg *Config,
	s storage.StorageInterface,
	dbClient db.DBClientInterface,
	verifier authentication.TokenVerifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	estimator := billing.NewEstimator(cfg.DefaultRatePerMinute)
	classifier := billing.NewClassifier(cfg.CriticalBalanceThreshold, cfg.DefaultWarningThreshold)
	gateway := billing.NewRetryingGateway(
		billing.NewStorageGateway(s, tracer, logger),
		cfg.DeductionMaxAttempts,
		cfg.DeductionRetryBaseDelay,
		tracer,
		logger,
	)

	billingService := billing.NewService(s, gateway, estimator, classifier, cfg.DefaultWarningThreshold, tracer, logger)
	invitesService := invites.NewService(s, tracer, logger)
	teamService := team.NewService(
		s,
		cfg.DefaultCompanySeatLimit,
		cfg.SignupCreditAmount,
		cfg.DefaultWarningThreshold,
		cfg.InvitationLifetime,
		tracer,
		monitor,
		logger,
	)
	callsService := calls.NewService(s, tracer, logger)
	webhookService := webhooks.NewService(s, billingService, estimator, tracer, logger)

	invitesAPI := invites.NewAPI(invitesService, tracer, logger)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	webhooks.NewAPI(webhookService, cfg.ProviderWebhookSecret, logger).RegisterEndpoints(router)
	// Invite lookup happens before the user has a session.
	invitesAPI.RegisterLookupEndpoint(router)

	router.Group(func(r chi.Router) {
		r.Use(authentication.NewMiddleware(verifier, tracer, monitor, logger).Authenticate())

		billing.NewAPI(billingService, tracer, monitor, logger).RegisterEndpoints(r)
		invitesAPI.RegisterEndpoints(r)
		team.NewAPI(teamService, tracer, logger).RegisterEndpoints(r)
		calls.NewAPI(callsService, tracer, logger).RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
