// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package team

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/monitoring"
	"github.com/drscale/console-service/internal/storage"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package team -destination ./mock_interfaces.go -source=./interfaces.go

func newTestService(storage StorageInterface) *Service {
	return NewService(
		storage,
		5,
		10,
		10,
		168*time.Hour,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logging.NewNoopLogger(),
	)
}

func TestService_CreateCompany(t *testing.T) {
	t.Run("provisions owner membership and signup credit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)

		mockStorage.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *types.Company) (*types.Company, error) {
				if c.Name != "Acme Clinics" || c.SeatLimit != 5 || !c.Enabled {
					t.Errorf("unexpected company: %+v", c)
				}
				c.ID = "company-1"
				return c, nil
			})
		mockStorage.EXPECT().AddMember(gomock.Any(), "company-1", "user-1", "owner").Return("membership-1", nil)
		mockStorage.EXPECT().CreateBalance(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *types.Balance) (*types.Balance, error) {
				if b.UserID != "user-1" || b.CompanyID != "company-1" || b.Amount != 10 {
					t.Errorf("unexpected balance: %+v", b)
				}
				return b, nil
			})

		svc := newTestService(mockStorage)

		company, err := svc.CreateCompany(context.Background(), "Acme Clinics", "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if company.ID != "company-1" {
			t.Errorf("expected company-1, got %s", company.ID)
		}
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := newTestService(NewMockStorageInterface(ctrl))

		if _, err := svc.CreateCompany(context.Background(), "", "user-1"); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestService_InviteMember(t *testing.T) {
	t.Run("issues a single-use token with an expiry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockStorage.EXPECT().GetMember(gomock.Any(), "company-1", "user-1").
			Return(&types.Membership{CompanyID: "company-1", UserID: "user-1", Role: "admin"}, nil)
		mockStorage.EXPECT().GetSeatUsage(gomock.Any(), "company-1").
			Return(&types.SeatUsage{CompanyID: "company-1", SeatsUsed: 2, SeatLimit: 5}, nil)
		mockStorage.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, invite *types.Invite) (*types.Invite, error) {
				if invite.Token == "" {
					t.Error("expected a generated token")
				}
				if invite.Status != types.InviteStatusPending {
					t.Errorf("expected pending status, got %s", invite.Status)
				}
				if invite.ExpiresAt.Before(time.Now().Add(167 * time.Hour)) {
					t.Errorf("expiry too soon: %v", invite.ExpiresAt)
				}
				invite.ID = "invite-1"
				return invite, nil
			})

		svc := newTestService(mockStorage)

		invite, err := svc.InviteMember(context.Background(), "user-1", "company-1", "new@drscale.ai", "member")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if invite.ID != "invite-1" {
			t.Errorf("expected invite-1, got %s", invite.ID)
		}
	})

	t.Run("full company cannot invite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockStorage.EXPECT().GetMember(gomock.Any(), "company-1", "user-1").
			Return(&types.Membership{CompanyID: "company-1", UserID: "user-1", Role: "owner"}, nil)
		mockStorage.EXPECT().GetSeatUsage(gomock.Any(), "company-1").
			Return(&types.SeatUsage{CompanyID: "company-1", SeatsUsed: 5, SeatLimit: 5}, nil)

		svc := newTestService(mockStorage)

		_, err := svc.InviteMember(context.Background(), "user-1", "company-1", "new@drscale.ai", "member")
		if !errors.Is(err, ErrSeatLimitReached) {
			t.Fatalf("expected ErrSeatLimitReached, got %v", err)
		}
	})

	t.Run("unknown role is rejected before any read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := newTestService(NewMockStorageInterface(ctrl))

		_, err := svc.InviteMember(context.Background(), "user-1", "company-1", "new@drscale.ai", "superuser")
		if !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole, got %v", err)
		}
	})

	t.Run("caller outside the company cannot invite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockStorage.EXPECT().GetMember(gomock.Any(), "victim-co", "attacker-1").
			Return(nil, storage.ErrNotFound)

		svc := newTestService(mockStorage)

		_, err := svc.InviteMember(context.Background(), "attacker-1", "victim-co", "attacker@evil.test", "admin")
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("plain member cannot invite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockStorage.EXPECT().GetMember(gomock.Any(), "company-1", "user-2").
			Return(&types.Membership{CompanyID: "company-1", UserID: "user-2", Role: "member"}, nil)

		svc := newTestService(mockStorage)

		_, err := svc.InviteMember(context.Background(), "user-2", "company-1", "new@drscale.ai", "member")
		if !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})
}

func TestService_UpdateMemberRole(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		setupMocks  func(*MockStorageInterface)
		expectedErr error
	}{
		{
			name: "owner promotes a member",
			role: "admin",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetMember(gomock.Any(), "company-1", "user-1").
					Return(&types.Membership{CompanyID: "company-1", UserID: "user-1", Role: "owner"}, nil)
				mockStorage.EXPECT().UpdateMember(gomock.Any(), "company-1", "user-2", "admin").Return(nil)
			},
		},
		{
			name:        "invalid role",
			role:        "root",
			setupMocks:  func(mockStorage *MockStorageInterface) {},
			expectedErr: ErrInvalidRole,
		},
		{
			name: "plain member cannot change roles",
			role: "admin",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetMember(gomock.Any(), "company-1", "user-1").
					Return(&types.Membership{CompanyID: "company-1", UserID: "user-1", Role: "member"}, nil)
			},
			expectedErr: ErrNotAuthorized,
		},
		{
			name: "caller outside the company cannot change roles",
			role: "admin",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetMember(gomock.Any(), "company-1", "user-1").
					Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrNotAuthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tt.setupMocks(mockStorage)

			svc := newTestService(mockStorage)

			err := svc.UpdateMemberRole(context.Background(), "user-1", "company-1", "user-2", tt.role)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_ListMembers(t *testing.T) {
	t.Run("any member can list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockStorage.EXPECT().GetMember(gomock.Any(), "company-1", "user-2").
			Return(&types.Membership{CompanyID: "company-1", UserID: "user-2", Role: "member"}, nil)
		mockStorage.EXPECT().ListMembersByCompanyID(gomock.Any(), "company-1").
			Return([]*types.Membership{{CompanyID: "company-1", UserID: "user-1", Role: "owner"}}, nil)

		svc := newTestService(mockStorage)

		members, err := svc.ListMembers(context.Background(), "user-2", "company-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(members) != 1 {
			t.Errorf("expected 1 member, got %d", len(members))
		}
	})

	t.Run("outsider cannot list members", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockStorage.EXPECT().GetMember(gomock.Any(), "victim-co", "attacker-1").
			Return(nil, storage.ErrNotFound)

		svc := newTestService(mockStorage)

		if _, err := svc.ListMembers(context.Background(), "attacker-1", "victim-co"); !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})
}

func TestService_GetSeatUsage(t *testing.T) {
	t.Run("outsider cannot read seat usage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockStorage.EXPECT().GetMember(gomock.Any(), "victim-co", "attacker-1").
			Return(nil, storage.ErrNotFound)

		svc := newTestService(mockStorage)

		if _, err := svc.GetSeatUsage(context.Background(), "attacker-1", "victim-co"); !errors.Is(err, ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("member reads seat usage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStorage := NewMockStorageInterface(ctrl)
		mockStorage.EXPECT().GetMember(gomock.Any(), "company-1", "user-1").
			Return(&types.Membership{CompanyID: "company-1", UserID: "user-1", Role: "member"}, nil)
		mockStorage.EXPECT().GetSeatUsage(gomock.Any(), "company-1").
			Return(&types.SeatUsage{CompanyID: "company-1", SeatsUsed: 3, SeatLimit: 5}, nil)

		svc := newTestService(mockStorage)

		usage, err := svc.GetSeatUsage(context.Background(), "user-1", "company-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if usage.SeatsUsed != 3 {
			t.Errorf("expected 3 seats used, got %d", usage.SeatsUsed)
		}
	})
}
