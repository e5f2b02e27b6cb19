// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package webhooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/storage"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
	"github.com/drscale/console-service/pkg/billing"
)

type Service struct {
	storage   StorageInterface
	billing   BillingInterface
	estimator *billing.Estimator
	tracer    tracing.TracingInterface
	logger    logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	billingService BillingInterface,
	estimator *billing.Estimator,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:   storage,
		billing:   billingService,
		estimator: estimator,
		tracer:    tracer,
		logger:    logger,
	}
}

// HandleCallCompleted records the finished call and settles its cost.
// Both steps key on the call ID, so processing the same event twice leaves
// one call row and one ledger entry.
func (s *Service) HandleCallCompleted(ctx context.Context, event *CallCompletedEvent) error {
	ctx, span := s.tracer.Start(ctx, "webhooks: HandleCallCompleted")
	defer span.End()

	cost, err := s.estimator.EstimateCost(event.DurationSec, event.RatePerMinute)
	if err != nil {
		return fmt.Errorf("call %s has an unbillable duration: %w", event.CallID, err)
	}

	_, err = s.storage.CreateCall(ctx, &types.Call{
		ID:            event.CallID,
		CompanyID:     event.CompanyID,
		UserID:        event.UserID,
		DurationSec:   event.DurationSec,
		RatePerMinute: event.RatePerMinute,
		Cost:          cost,
	})
	if err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
		return fmt.Errorf("failed to record call %s: %w", event.CallID, err)
	}
	if errors.Is(err, storage.ErrDuplicateKey) {
		s.logger.Debugf("call %s already recorded, redelivery", event.CallID)
	}

	if _, err := s.billing.SettleCall(ctx, event.UserID, event.CompanyID, event.CallID, event.DurationSec, event.RatePerMinute); err != nil {
		return fmt.Errorf("failed to settle call %s: %w", event.CallID, err)
	}

	return nil
}

// HandlePaymentCompleted credits the balance for a cleared top-up. The
// ledger keys credits by the payment reference, so a redelivered event
// returns the balance the original credit produced.
func (s *Service) HandlePaymentCompleted(ctx context.Context, event *PaymentCompletedEvent) (float64, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks: HandlePaymentCompleted")
	defer span.End()

	newBalance, err := s.storage.AddCredit(ctx, event.UserID, event.CompanyID, event.Reference, event.Amount)
	if err != nil {
		return 0, fmt.Errorf("failed to credit payment %s: %w", event.Reference, err)
	}

	s.logger.Infof("credited %.4f for payment %s, balance is now %.4f", event.Amount, event.Reference, newBalance)
	return newBalance, nil
}
