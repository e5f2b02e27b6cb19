// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package calls

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
	"github.com/drscale/console-service/pkg/authentication"
)

func newTestAPI(storage *stubStorage) *API {
	return NewAPI(NewService(storage, tracing.NewNoopTracer(), logging.NewNoopLogger()), tracing.NewNoopTracer(), logging.NewNoopLogger())
}

func serveAs(api *API, userID, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if userID != "" {
		req = req.WithContext(authentication.WithUserID(req.Context(), userID))
	}
	w := httptest.NewRecorder()

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)
	mux.ServeHTTP(w, req)

	return w
}

func TestAPI_ListCalls(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		storage := &stubStorage{
			members: memberOf("company-1", "user-1", "member"),
			calls:   []*types.Call{{ID: "call-1", CompanyID: "company-1", Cost: 0.04}},
		}
		api := newTestAPI(storage)

		w := serveAs(api, "user-1", http.MethodGet, "/api/v0/teams/company-1/calls?page=2&size=10")

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(res.Body)
			t.Fatalf("expected status 200, got %d. Body: %s", res.StatusCode, string(body))
		}
		if storage.lastPage != 2 || storage.lastSize != 10 {
			t.Errorf("paging not forwarded: page=%d size=%d", storage.lastPage, storage.lastSize)
		}

		var calls []*types.Call
		if err := json.NewDecoder(res.Body).Decode(&calls); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(calls) != 1 || calls[0].ID != "call-1" {
			t.Errorf("unexpected calls: %+v", calls)
		}
	})

	t.Run("without a session", func(t *testing.T) {
		api := newTestAPI(&stubStorage{})

		w := serveAs(api, "", http.MethodGet, "/api/v0/teams/company-1/calls")

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})

	t.Run("from outside the team", func(t *testing.T) {
		storage := &stubStorage{calls: []*types.Call{{ID: "call-1"}}}
		api := newTestAPI(storage)

		w := serveAs(api, "attacker-1", http.MethodGet, "/api/v0/teams/victim-co/calls")

		if w.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", w.Code)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		storage := &stubStorage{
			members: memberOf("company-1", "user-1", "member"),
			err:     errors.New("db down"),
		}
		api := newTestAPI(storage)

		w := serveAs(api, "user-1", http.MethodGet, "/api/v0/teams/company-1/calls")

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", w.Code)
		}
	})
}

func TestAPI_Summary(t *testing.T) {
	storage := &stubStorage{
		members: memberOf("company-1", "user-1", "member"),
		summary: &types.CallSummary{TotalCalls: 3, TotalDurationSec: 360, TotalCost: 0.12},
	}
	api := newTestAPI(storage)

	w := serveAs(api, "user-1", http.MethodGet, "/api/v0/teams/company-1/calls/summary")

	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}

	var summary types.CallSummary
	if err := json.NewDecoder(res.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if summary.TotalCalls != 3 || summary.TotalCost != 0.12 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
