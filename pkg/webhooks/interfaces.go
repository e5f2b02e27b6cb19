// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package webhooks

import (
	"context"

	"github.com/drscale/console-service/internal/types"
)

type ServiceInterface interface {
	HandleCallCompleted(ctx context.Context, event *CallCompletedEvent) error
	HandlePaymentCompleted(ctx context.Context, event *PaymentCompletedEvent) (float64, error)
}

type StorageInterface interface {
	CreateCall(ctx context.Context, call *types.Call) (*types.Call, error)
	AddCredit(ctx context.Context, userID, companyID, reference string, amount float64) (float64, error)
}

// BillingInterface is the settlement entry point of the billing guard.
type BillingInterface interface {
	SettleCall(ctx context.Context, userID, companyID, callID string, durationSec, ratePerMinute float64) (float64, error)
}
