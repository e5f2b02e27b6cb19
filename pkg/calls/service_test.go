// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package calls

import (
	"context"
	"errors"
	"testing"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/storage"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
)

type stubStorage struct {
	members  map[string]string // "companyID/userID" → role
	lastPage int64
	lastSize int64
	calls    []*types.Call
	summary  *types.CallSummary
	err      error
}

func (s *stubStorage) GetMember(ctx context.Context, companyID, userID string) (*types.Membership, error) {
	role, ok := s.members[companyID+"/"+userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &types.Membership{CompanyID: companyID, UserID: userID, Role: role}, nil
}

func (s *stubStorage) ListCallsByCompanyID(ctx context.Context, companyID string, page, size int64) ([]*types.Call, error) {
	s.lastPage = page
	s.lastSize = size
	return s.calls, s.err
}

func (s *stubStorage) GetCallSummary(ctx context.Context, companyID string) (*types.CallSummary, error) {
	return s.summary, s.err
}

func memberOf(companyID, userID, role string) map[string]string {
	return map[string]string{companyID + "/" + userID: role}
}

func TestService_ListCalls(t *testing.T) {
	tests := []struct {
		name         string
		page         int64
		size         int64
		expectedPage int64
		expectedSize int64
	}{
		{name: "explicit paging", page: 3, size: 25, expectedPage: 3, expectedSize: 25},
		{name: "zero values fall back to defaults", expectedPage: 1, expectedSize: defaultPageSize},
		{name: "negative page is clamped", page: -2, size: 10, expectedPage: 1, expectedSize: 10},
		{name: "oversized page size is clamped", page: 1, size: 10000, expectedPage: 1, expectedSize: defaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &stubStorage{
				members: memberOf("company-1", "user-1", "member"),
				calls:   []*types.Call{{ID: "call-1"}},
			}
			svc := NewService(storage, tracing.NewNoopTracer(), logging.NewNoopLogger())

			calls, err := svc.ListCalls(context.Background(), "user-1", "company-1", tt.page, tt.size)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(calls) != 1 {
				t.Errorf("expected 1 call, got %d", len(calls))
			}
			if storage.lastPage != tt.expectedPage || storage.lastSize != tt.expectedSize {
				t.Errorf("expected page=%d size=%d, got page=%d size=%d",
					tt.expectedPage, tt.expectedSize, storage.lastPage, storage.lastSize)
			}
		})
	}

	t.Run("outsider cannot read call history", func(t *testing.T) {
		storage := &stubStorage{calls: []*types.Call{{ID: "call-1"}}}
		svc := NewService(storage, tracing.NewNoopTracer(), logging.NewNoopLogger())

		if _, err := svc.ListCalls(context.Background(), "attacker-1", "victim-co", 1, 10); !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
		if storage.lastSize != 0 {
			t.Error("expected no storage read for an unauthorized caller")
		}
	})
}

func TestService_Summary(t *testing.T) {
	storage := &stubStorage{
		members: memberOf("company-1", "user-1", "member"),
		summary: &types.CallSummary{TotalCalls: 7, TotalDurationSec: 840, TotalCost: 0.28},
	}
	svc := NewService(storage, tracing.NewNoopTracer(), logging.NewNoopLogger())

	summary, err := svc.Summary(context.Background(), "user-1", "company-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalCalls != 7 || summary.TotalCost != 0.28 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestService_Summary_NotAMember(t *testing.T) {
	storage := &stubStorage{summary: &types.CallSummary{TotalCalls: 7}}
	svc := NewService(storage, tracing.NewNoopTracer(), logging.NewNoopLogger())

	if _, err := svc.Summary(context.Background(), "attacker-1", "victim-co"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}
