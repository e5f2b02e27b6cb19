// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package team

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/storage"
	"github.com/drscale/console-service/internal/tracing"
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

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/teams", a.createTeam)
	mux.Get("/api/v0/teams", a.listTeams)
	mux.Get("/api/v0/teams/{teamID}/members", a.listMembers)
	mux.Patch("/api/v0/teams/{teamID}/members/{userID}", a.updateMemberRole)
	mux.Post("/api/v0/teams/{teamID}/invites", a.inviteMember)
	mux.Get("/api/v0/teams/{teamID}/seats", a.getSeatUsage)
}

type createTeamRequest struct {
	Name string `json:"name" validate:"required"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type inviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

func (a *API) createTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	company, err := a.service.CreateCompany(r.Context(), req.Name, userID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, company)
}

func (a *API) listTeams(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	companies, err := a.service.ListCompanies(r.Context(), userID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, companies)
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	members, err := a.service.ListMembers(r.Context(), callerID, chi.URLParam(r, "teamID"))
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, members)
}

func (a *API) updateMemberRole(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	err := a.service.UpdateMemberRole(r.Context(), callerID, chi.URLParam(r, "teamID"), chi.URLParam(r, "userID"), req.Role)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) inviteMember(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req inviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	invite, err := a.service.InviteMember(r.Context(), callerID, chi.URLParam(r, "teamID"), req.Email, req.Role)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, invite)
}

func (a *API) getSeatUsage(w http.ResponseWriter, r *http.Request) {
	callerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	usage, err := a.service.GetSeatUsage(r.Context(), callerID, chi.URLParam(r, "teamID"))
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, usage)
}

func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidRole):
		errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSeatLimitReached):
		errorResponse(w, http.StatusPaymentRequired, "seat_limit_reached")
	case errors.Is(err, ErrNotAuthorized):
		errorResponse(w, http.StatusForbidden, "not_authorized")
	case errors.Is(err, storage.ErrNotFound):
		errorResponse(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrDuplicateKey):
		errorResponse(w, http.StatusConflict, "already exists")
	default:
		a.logger.Errorf("team request failed: %v", err)
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
