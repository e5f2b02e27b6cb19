// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package team

import (
	"context"

	"github.com/drscale/console-service/internal/types"
)

type ServiceInterface interface {
	CreateCompany(ctx context.Context, name, ownerID string) (*types.Company, error)
	ListCompanies(ctx context.Context, userID string) ([]*types.Company, error)
	ListMembers(ctx context.Context, callerID, companyID string) ([]*types.Membership, error)
	UpdateMemberRole(ctx context.Context, callerID, companyID, userID, role string) error
	InviteMember(ctx context.Context, callerID, companyID, email, role string) (*types.Invite, error)
	GetSeatUsage(ctx context.Context, callerID, companyID string) (*types.SeatUsage, error)
}

type StorageInterface interface {
	CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error)
	ListCompaniesByUserID(ctx context.Context, userID string) ([]*types.Company, error)
	AddMember(ctx context.Context, companyID, userID, role string) (string, error)
	UpdateMember(ctx context.Context, companyID, userID, role string) error
	GetMember(ctx context.Context, companyID, userID string) (*types.Membership, error)
	ListMembersByCompanyID(ctx context.Context, companyID string) ([]*types.Membership, error)
	GetSeatUsage(ctx context.Context, companyID string) (*types.SeatUsage, error)
	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	CreateBalance(ctx context.Context, b *types.Balance) (*types.Balance, error)
}
