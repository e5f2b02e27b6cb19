// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package invites

import (
	"context"

	"github.com/drscale/console-service/internal/types"
)

type ServiceInterface interface {
	Lookup(ctx context.Context, token string) (*types.InvitePreview, error)
	Accept(ctx context.Context, token, userID string) (*types.Company, error)
}

type StorageInterface interface {
	GetInviteByToken(ctx context.Context, token string) (*types.Invite, error)
	GetCompanyByID(ctx context.Context, id string) (*types.Company, error)
	GetSeatUsage(ctx context.Context, companyID string) (*types.SeatUsage, error)
	AcceptInvite(ctx context.Context, inviteID, userID string) error
}
