// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/tracing"
)

// StorageGateway deducts directly against the storage layer.
type StorageGateway struct {
	storage DeductionStorageInterface
	tracer  tracing.TracingInterface
	logger  logging.LoggerInterface
}

func NewStorageGateway(storage DeductionStorageInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *StorageGateway {
	return &StorageGateway{
		storage: storage,
		tracer:  tracer,
		logger:  logger,
	}
}

func (g *StorageGateway) Deduct(ctx context.Context, userID, companyID, callID string, amount float64) (float64, error) {
	ctx, span := g.tracer.Start(ctx, "billing: Deduct")
	defer span.End()

	return g.storage.DeductBalance(ctx, userID, companyID, callID, amount)
}

// RetryingGateway wraps a gateway with a capped exponential backoff. Only
// transient failures are retried; replaying with the same call ID is safe
// because the inner deduction is idempotent on it.
type RetryingGateway struct {
	inner       DeductionGatewayInterface
	maxAttempts int
	baseDelay   time.Duration
	tracer      tracing.TracingInterface
	logger      logging.LoggerInterface
}

func NewRetryingGateway(inner DeductionGatewayInterface, maxAttempts int, baseDelay time.Duration, tracer tracing.TracingInterface, logger logging.LoggerInterface) *RetryingGateway {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryingGateway{
		inner:       inner,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		tracer:      tracer,
		logger:      logger,
	}
}

func (g *RetryingGateway) Deduct(ctx context.Context, userID, companyID, callID string, amount float64) (float64, error) {
	ctx, span := g.tracer.Start(ctx, "billing: DeductWithRetry")
	defer span.End()

	delay := g.baseDelay
	var lastErr error

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		newBalance, err := g.inner.Deduct(ctx, userID, companyID, callID, amount)
		if err == nil {
			return newBalance, nil
		}
		if !IsTransient(err) {
			return 0, err
		}

		lastErr = err
		if attempt == g.maxAttempts {
			break
		}

		g.logger.Warnf("transient deduction failure for call %s (attempt %d/%d): %v", callID, attempt, g.maxAttempts, err)

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return 0, fmt.Errorf("deduction for call %s failed after %d attempts: %w", callID, g.maxAttempts, lastErr)
}
