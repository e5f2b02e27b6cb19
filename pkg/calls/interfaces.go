// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package calls

import (
	"context"

	"github.com/drscale/console-service/internal/types"
)

type ServiceInterface interface {
	ListCalls(ctx context.Context, callerID, companyID string, page, size int64) ([]*types.Call, error)
	Summary(ctx context.Context, callerID, companyID string) (*types.CallSummary, error)
}

type StorageInterface interface {
	GetMember(ctx context.Context, companyID, userID string) (*types.Membership, error)
	ListCallsByCompanyID(ctx context.Context, companyID string, page, size int64) ([]*types.Call, error)
	GetCallSummary(ctx context.Context, companyID string) (*types.CallSummary, error)
}
