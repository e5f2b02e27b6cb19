// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package webhooks

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/drscale/console-service/internal/logging"
)

const secretHeader = "X-Webhook-Secret"

type API struct {
	service  ServiceInterface
	secret   string
	validate *validator.Validate
	logger   logging.LoggerInterface
}

func NewAPI(service ServiceInterface, secret string, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		secret:   secret,
		validate: validator.New(),
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/webhooks/calls/completed", a.callCompleted)
	mux.Post("/webhooks/payments/completed", a.paymentCompleted)
}

func (a *API) callCompleted(w http.ResponseWriter, r *http.Request) {
	if !a.authorized(r) {
		a.logger.Security().AuthzFailure("webhook", "provider-secret")
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var event CallCompletedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		a.logger.Errorf("invalid call-completed payload: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(event); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := a.service.HandleCallCompleted(r.Context(), &event); err != nil {
		a.logger.Errorf("failed to process call-completed event: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *API) paymentCompleted(w http.ResponseWriter, r *http.Request) {
	if !a.authorized(r) {
		a.logger.Security().AuthzFailure("webhook", "provider-secret")
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var event PaymentCompletedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		a.logger.Errorf("invalid payment-completed payload: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(event); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	newBalance, err := a.service.HandlePaymentCompleted(r.Context(), &event)
	if err != nil {
		a.logger.Errorf("failed to process payment-completed event: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]float64{"balance": newBalance}); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func (a *API) authorized(r *http.Request) bool {
	if a.secret == "" {
		return false
	}
	provided := r.Header.Get(secretHeader)
	return subtle.ConstantTimeCompare([]byte(provided), []byte(a.secret)) == 1
}
