// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package invites

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
	"github.com/drscale/console-service/pkg/authentication"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate
	tracer   tracing.TracingInterface
	logger   logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(),
		tracer:   tracer,
		logger:   logger,
	}
}

// RegisterLookupEndpoint mounts the unauthenticated token lookup used by the
// signup flow before the user has a session.
func (a *API) RegisterLookupEndpoint(mux chi.Router) {
	mux.Post("/api/v0/invites/lookup", a.lookup)
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/invites/accept", a.accept)
}

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type lookupResponse struct {
	Valid  bool                 `json:"valid"`
	Invite *types.InvitePreview `json:"invite,omitempty"`
	Error  string               `json:"error,omitempty"`
}

type acceptResponse struct {
	CompanyID   string `json:"team_id"`
	CompanyName string `json:"team_name"`
}

func (a *API) lookup(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	preview, err := a.service.Lookup(r.Context(), req.Token)
	switch {
	case errors.Is(err, ErrInvalidOrExpired):
		// Still a 200. The caller learns the token is unusable, nothing more.
		jsonResponse(w, http.StatusOK, lookupResponse{Valid: false, Error: "invalid_or_expired"})
	case err != nil:
		a.logger.Errorf("invite lookup failed: %v", err)
		errorResponse(w, http.StatusInternalServerError, "internal error")
	default:
		jsonResponse(w, http.StatusOK, lookupResponse{Valid: true, Invite: preview})
	}
}

func (a *API) accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	company, err := a.service.Accept(r.Context(), req.Token, userID)
	switch {
	case errors.Is(err, ErrInvalidOrExpired):
		errorResponse(w, http.StatusBadRequest, "invalid_or_expired")
	case errors.Is(err, ErrSeatLimitReached):
		errorResponse(w, http.StatusPaymentRequired, "seat_limit_reached")
	case errors.Is(err, ErrAlreadyMember):
		errorResponse(w, http.StatusConflict, "already_member")
	case err != nil:
		a.logger.Errorf("invite acceptance failed: %v", err)
		errorResponse(w, http.StatusInternalServerError, "internal error")
	default:
		jsonResponse(w, http.StatusOK, acceptResponse{CompanyID: company.ID, CompanyName: company.Name})
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
