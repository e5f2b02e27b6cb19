// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"context"

	"github.com/drscale/console-service/internal/types"
)

type ServiceInterface interface {
	GetBalanceStatus(ctx context.Context, userID, companyID string) (*types.BalanceStatus, error)
	CheckSufficientBalance(ctx context.Context, userID, companyID string, estimatedCost float64) (bool, error)
	AuthorizeCall(ctx context.Context, userID, companyID string, durationSec, ratePerMinute float64) (*types.CallAuthorization, error)
	SettleCall(ctx context.Context, userID, companyID, callID string, durationSec, ratePerMinute float64) (float64, error)
}

// StorageInterface is the subset of the storage layer the guard reads from.
// The guard never writes the balance, only the deduction transaction does.
type StorageInterface interface {
	GetBalance(ctx context.Context, userID, companyID string) (*types.Balance, error)
	CreateBalance(ctx context.Context, b *types.Balance) (*types.Balance, error)
}

// DeductionGatewayInterface fronts the atomic deduction operation. The call
// ID is the idempotency key, implementations must pass it through unchanged.
type DeductionGatewayInterface interface {
	Deduct(ctx context.Context, userID, companyID, callID string, amount float64) (float64, error)
}

// DeductionStorageInterface is the storage entry point of the atomic
// deduction transaction.
type DeductionStorageInterface interface {
	DeductBalance(ctx context.Context, userID, companyID, callID string, amount float64) (float64, error)
}
