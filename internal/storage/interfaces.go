// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"

	"github.com/drscale/console-service/internal/types"
)

type StorageInterface interface {
	CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error)
	GetCompanyByID(ctx context.Context, id string) (*types.Company, error)
	ListCompaniesByUserID(ctx context.Context, userID string) ([]*types.Company, error)

	AddMember(ctx context.Context, companyID, userID, role string) (string, error)
	UpdateMember(ctx context.Context, companyID, userID, role string) error
	GetMember(ctx context.Context, companyID, userID string) (*types.Membership, error)
	ListMembersByCompanyID(ctx context.Context, companyID string) ([]*types.Membership, error)
	GetSeatUsage(ctx context.Context, companyID string) (*types.SeatUsage, error)

	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	GetInviteByToken(ctx context.Context, token string) (*types.Invite, error)
	AcceptInvite(ctx context.Context, inviteID, userID string) error

	GetBalance(ctx context.Context, userID, companyID string) (*types.Balance, error)
	CreateBalance(ctx context.Context, b *types.Balance) (*types.Balance, error)
	DeductBalance(ctx context.Context, userID, companyID, callID string, amount float64) (float64, error)
	AddCredit(ctx context.Context, userID, companyID, reference string, amount float64) (float64, error)

	CreateCall(ctx context.Context, call *types.Call) (*types.Call, error)
	ListCallsByCompanyID(ctx context.Context, companyID string, page, size int64) ([]*types.Call, error)
	GetCallSummary(ctx context.Context, companyID string) (*types.CallSummary, error)
}
