// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package invites

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/storage"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package invites -destination ./mock_interfaces.go -source=./interfaces.go

func pendingInvite() *types.Invite {
	return &types.Invite{
		ID:        "invite-1",
		Token:     "tok-abc",
		CompanyID: "company-1",
		Email:     "new@drscale.ai",
		Role:      "member",
		Status:    types.InviteStatusPending,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func TestService_Lookup(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		setupMocks  func(*MockStorageInterface)
		expected    *types.InvitePreview
		expectedErr error
	}{
		{
			name:  "valid pending invite",
			token: "tok-abc",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-abc").Return(pendingInvite(), nil)
				mockStorage.EXPECT().GetCompanyByID(gomock.Any(), "company-1").
					Return(&types.Company{ID: "company-1", Name: "Acme Clinics"}, nil)
			},
			expected: &types.InvitePreview{
				Email:       "new@drscale.ai",
				Role:        "member",
				CompanyID:   "company-1",
				CompanyName: "Acme Clinics",
				Token:       "tok-abc",
			},
		},
		{
			name:  "unknown token",
			token: "tok-nope",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-nope").Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrInvalidOrExpired,
		},
		{
			name:  "expired invite",
			token: "tok-abc",
			setupMocks: func(mockStorage *MockStorageInterface) {
				invite := pendingInvite()
				invite.ExpiresAt = time.Now().Add(-time.Hour)
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-abc").Return(invite, nil)
			},
			expectedErr: ErrInvalidOrExpired,
		},
		{
			name:  "already accepted invite",
			token: "tok-abc",
			setupMocks: func(mockStorage *MockStorageInterface) {
				invite := pendingInvite()
				invite.Status = types.InviteStatusAccepted
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-abc").Return(invite, nil)
			},
			expectedErr: ErrInvalidOrExpired,
		},
		{
			name:  "revoked invite",
			token: "tok-abc",
			setupMocks: func(mockStorage *MockStorageInterface) {
				invite := pendingInvite()
				invite.Status = types.InviteStatusRevoked
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-abc").Return(invite, nil)
			},
			expectedErr: ErrInvalidOrExpired,
		},
		{
			name:        "empty token short-circuits",
			token:       "",
			setupMocks:  func(mockStorage *MockStorageInterface) {},
			expectedErr: ErrInvalidOrExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tt.setupMocks(mockStorage)

			svc := NewService(mockStorage, tracing.NewNoopTracer(), logging.NewNoopLogger())

			preview, err := svc.Lookup(context.Background(), tt.token)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *preview != *tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, preview)
			}
		})
	}
}

func TestService_Accept(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*MockStorageInterface)
		expectedErr error
	}{
		{
			name: "success",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-abc").Return(pendingInvite(), nil)
				mockStorage.EXPECT().GetSeatUsage(gomock.Any(), "company-1").
					Return(&types.SeatUsage{CompanyID: "company-1", SeatsUsed: 2, SeatLimit: 5}, nil)
				mockStorage.EXPECT().AcceptInvite(gomock.Any(), "invite-1", "user-9").Return(nil)
				mockStorage.EXPECT().GetCompanyByID(gomock.Any(), "company-1").
					Return(&types.Company{ID: "company-1", Name: "Acme Clinics"}, nil)
			},
		},
		{
			name: "company already full",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-abc").Return(pendingInvite(), nil)
				mockStorage.EXPECT().GetSeatUsage(gomock.Any(), "company-1").
					Return(&types.SeatUsage{CompanyID: "company-1", SeatsUsed: 5, SeatLimit: 5}, nil)
			},
			expectedErr: ErrSeatLimitReached,
		},
		{
			name: "lost the last seat inside the transaction",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-abc").Return(pendingInvite(), nil)
				mockStorage.EXPECT().GetSeatUsage(gomock.Any(), "company-1").
					Return(&types.SeatUsage{CompanyID: "company-1", SeatsUsed: 4, SeatLimit: 5}, nil)
				mockStorage.EXPECT().AcceptInvite(gomock.Any(), "invite-1", "user-9").
					Return(storage.ErrSeatLimitExceeded)
			},
			expectedErr: ErrSeatLimitReached,
		},
		{
			name: "user already belongs to the company",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-abc").Return(pendingInvite(), nil)
				mockStorage.EXPECT().GetSeatUsage(gomock.Any(), "company-1").
					Return(&types.SeatUsage{CompanyID: "company-1", SeatsUsed: 2, SeatLimit: 5}, nil)
				mockStorage.EXPECT().AcceptInvite(gomock.Any(), "invite-1", "user-9").
					Return(storage.ErrDuplicateKey)
			},
			expectedErr: ErrAlreadyMember,
		},
		{
			name: "invite consumed by a racing accept",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-abc").Return(pendingInvite(), nil)
				mockStorage.EXPECT().GetSeatUsage(gomock.Any(), "company-1").
					Return(&types.SeatUsage{CompanyID: "company-1", SeatsUsed: 2, SeatLimit: 5}, nil)
				mockStorage.EXPECT().AcceptInvite(gomock.Any(), "invite-1", "user-9").
					Return(storage.ErrNotFound)
			},
			expectedErr: ErrInvalidOrExpired,
		},
		{
			name: "already consumed invite never reaches the transaction",
			setupMocks: func(mockStorage *MockStorageInterface) {
				invite := pendingInvite()
				invite.Status = types.InviteStatusAccepted
				mockStorage.EXPECT().GetInviteByToken(gomock.Any(), "tok-abc").Return(invite, nil)
			},
			expectedErr: ErrInvalidOrExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tt.setupMocks(mockStorage)

			svc := NewService(mockStorage, tracing.NewNoopTracer(), logging.NewNoopLogger())

			company, err := svc.Accept(context.Background(), "tok-abc", "user-9")

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if company.ID != "company-1" {
				t.Errorf("expected company-1, got %s", company.ID)
			}
		})
	}
}

// memberStore is an in-memory stand-in for the serializable acceptance
// transaction: the seat check and membership insert happen under one lock,
// the way the database transaction makes them atomic.
type memberStore struct {
	mu       sync.Mutex
	company  *types.Company
	invites  map[string]*types.Invite // token → invite
	consumed map[string]bool          // invite ID
	members  map[string]bool          // user ID
}

func newMemberStore(company *types.Company, seeded int) *memberStore {
	s := &memberStore{
		company:  company,
		invites:  make(map[string]*types.Invite),
		consumed: make(map[string]bool),
		members:  make(map[string]bool),
	}
	for i := 0; i < seeded; i++ {
		s.members[fmt.Sprintf("existing-%d", i)] = true
	}
	return s
}

func (s *memberStore) addInvite(invite *types.Invite) {
	s.invites[invite.Token] = invite
}

func (s *memberStore) GetInviteByToken(ctx context.Context, token string) (*types.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invite, ok := s.invites[token]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *invite
	return &copied, nil
}

func (s *memberStore) GetCompanyByID(ctx context.Context, id string) (*types.Company, error) {
	return s.company, nil
}

func (s *memberStore) GetSeatUsage(ctx context.Context, companyID string) (*types.SeatUsage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &types.SeatUsage{
		CompanyID: companyID,
		SeatsUsed: len(s.members),
		SeatLimit: s.company.SeatLimit,
	}, nil
}

func (s *memberStore) AcceptInvite(ctx context.Context, inviteID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consumed[inviteID] {
		return storage.ErrNotFound
	}
	if s.members[userID] {
		return storage.ErrDuplicateKey
	}
	if len(s.members) >= s.company.SeatLimit {
		return storage.ErrSeatLimitExceeded
	}

	s.consumed[inviteID] = true
	s.members[userID] = true
	return nil
}

func TestService_Accept_ConcurrentNearSeatLimit(t *testing.T) {
	const (
		seatLimit  = 5
		seeded     = 3
		contenders = 8
	)

	store := newMemberStore(&types.Company{ID: "company-1", Name: "Acme Clinics", SeatLimit: seatLimit}, seeded)
	for i := 0; i < contenders; i++ {
		store.addInvite(&types.Invite{
			ID:        fmt.Sprintf("invite-%d", i),
			Token:     fmt.Sprintf("tok-%d", i),
			CompanyID: "company-1",
			Email:     fmt.Sprintf("user-%d@drscale.ai", i),
			Role:      "member",
			Status:    types.InviteStatusPending,
			ExpiresAt: time.Now().Add(time.Hour),
		})
	}

	svc := NewService(store, tracing.NewNoopTracer(), logging.NewNoopLogger())

	var wg sync.WaitGroup
	results := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Accept(context.Background(), fmt.Sprintf("tok-%d", i), fmt.Sprintf("user-%d", i))
		}(i)
	}
	wg.Wait()

	var accepted int
	for i, err := range results {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, ErrSeatLimitReached):
			// expected for the losers
		default:
			t.Errorf("accept %d failed unexpectedly: %v", i, err)
		}
	}

	if got := len(store.members); got > seatLimit {
		t.Fatalf("seat limit overrun: %d members with a limit of %d", got, seatLimit)
	}
	if accepted != seatLimit-seeded {
		t.Errorf("expected %d accepts to win, got %d", seatLimit-seeded, accepted)
	}
	if len(store.members) != seatLimit {
		t.Errorf("expected the company to end exactly full, got %d members", len(store.members))
	}
}
