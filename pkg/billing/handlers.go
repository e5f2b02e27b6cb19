// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/monitoring"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/pkg/authentication"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate
	tracer   tracing.TracingInterface
	monitor  monitoring.MonitorInterface
	logger   logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service:  service,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/balance", a.getBalanceStatus)
	mux.Post("/api/v0/calls/authorize", a.authorizeCall)
	mux.Post("/api/v0/calls/{callID}/settle", a.settleCall)
}

type authorizeCallRequest struct {
	CompanyID     string  `json:"company_id" validate:"required"`
	DurationSec   float64 `json:"duration_sec" validate:"gte=0"`
	RatePerMinute float64 `json:"rate_per_minute" validate:"gte=0"`
}

type settleCallRequest struct {
	CompanyID     string  `json:"company_id" validate:"required"`
	DurationSec   float64 `json:"duration_sec" validate:"gte=0"`
	RatePerMinute float64 `json:"rate_per_minute" validate:"gte=0"`
}

type settleCallResponse struct {
	CallID     string  `json:"call_id"`
	NewBalance float64 `json:"new_balance"`
}

func (a *API) getBalanceStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		errorResponse(w, http.StatusBadRequest, "company_id is required")
		return
	}

	status, err := a.service.GetBalanceStatus(r.Context(), userID, companyID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, status)
}

func (a *API) authorizeCall(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req authorizeCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	auth, err := a.service.AuthorizeCall(r.Context(), userID, req.CompanyID, req.DurationSec, req.RatePerMinute)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, auth)
}

func (a *API) settleCall(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	callID := chi.URLParam(r, "callID")
	if callID == "" {
		errorResponse(w, http.StatusBadRequest, "call ID is required")
		return
	}

	var req settleCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	newBalance, err := a.service.SettleCall(r.Context(), userID, req.CompanyID, callID, req.DurationSec, req.RatePerMinute)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, settleCallResponse{CallID: callID, NewBalance: newBalance})
}

func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnknownBalance):
		errorResponse(w, http.StatusServiceUnavailable, "balance_unavailable")
	case errors.Is(err, ErrInsufficientBalance):
		errorResponse(w, http.StatusPaymentRequired, "insufficient_balance")
	default:
		a.logger.Errorf("billing request failed: %v", err)
		errorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

func jsonResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorResponse(w http.ResponseWriter, status int, msg string) {
	jsonResponse(w, status, map[string]string{"error": msg})
}
