// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package calls

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/pkg/authentication"
)

type API struct {
	service ServiceInterface
	tracer  tracing.TracingInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/teams/{teamID}/calls", a.listCalls)
	mux.Get("/api/v0/teams/{teamID}/calls/summary", a.summary)
}

func (a *API) listCalls(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	size, _ := strconv.ParseInt(r.URL.Query().Get("size"), 10, 64)

	calls, err := a.service.ListCalls(r.Context(), callerID, chi.URLParam(r, "teamID"), page, size)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, calls)
}

func (a *API) summary(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	summary, err := a.service.Summary(r.Context(), callerID, chi.URLParam(r, "teamID"))
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, summary)
}

func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotAuthorized) {
		errorResponse(w, http.StatusForbidden, "not_authorized")
		return
	}
	a.logger.Errorf("call analytics request failed: %v", err)
	errorResponse(w, http.StatusInternalServerError, "internal error")
}

func jsonResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorResponse(w http.ResponseWriter, status int, msg string) {
	jsonResponse(w, status, map[string]string{"error": msg})
}
