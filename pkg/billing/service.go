// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/storage"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
)

const (
	ReasonBlocked             = "account_blocked"
	ReasonInsufficientBalance = "insufficient_balance"
)

// Service is the balance guard. Every call-affecting decision goes through a
// fresh read of the balance; on any doubt it denies.
type Service struct {
	storage                 StorageInterface
	gateway                 DeductionGatewayInterface
	estimator               *Estimator
	classifier              *Classifier
	defaultWarningThreshold float64
	tracer                  tracing.TracingInterface
	logger                  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	gateway DeductionGatewayInterface,
	estimator *Estimator,
	classifier *Classifier,
	defaultWarningThreshold float64,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:                 storage,
		gateway:                 gateway,
		estimator:               estimator,
		classifier:              classifier,
		defaultWarningThreshold: defaultWarningThreshold,
		tracer:                  tracer,
		logger:                  logger,
	}
}

// GetBalanceStatus reads and classifies the current balance. A missing
// balance row is provisioned at zero on first read. Any fetch failure maps
// to ErrUnknownBalance so callers can tell "unknown" from "empty".
func (s *Service) GetBalanceStatus(ctx context.Context, userID, companyID string) (*types.BalanceStatus, error) {
	ctx, span := s.tracer.Start(ctx, "billing: GetBalanceStatus")
	defer span.End()

	if userID == "" || companyID == "" {
		return nil, fmt.Errorf("%w: user and company are required", ErrInvalidInput)
	}

	balance, err := s.storage.GetBalance(ctx, userID, companyID)
	if errors.Is(err, storage.ErrNotFound) {
		balance, err = s.provisionBalance(ctx, userID, companyID)
	}
	if err != nil {
		s.logger.Errorf("failed to fetch balance for user %s in company %s: %v", userID, companyID, err)
		return nil, ErrUnknownBalance
	}

	status := s.classifier.Classify(balance.Amount, balance.WarningThreshold)
	return &status, nil
}

func (s *Service) provisionBalance(ctx context.Context, userID, companyID string) (*types.Balance, error) {
	created, err := s.storage.CreateBalance(ctx, &types.Balance{
		UserID:           userID,
		CompanyID:        companyID,
		WarningThreshold: s.defaultWarningThreshold,
	})
	if errors.Is(err, storage.ErrDuplicateKey) {
		// Lost the provisioning race, the row exists now.
		return s.storage.GetBalance(ctx, userID, companyID)
	}
	return created, err
}

// CheckSufficientBalance re-reads the balance and reports whether it covers
// the estimated cost. It never trusts a previously fetched value.
func (s *Service) CheckSufficientBalance(ctx context.Context, userID, companyID string, estimatedCost float64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "billing: CheckSufficientBalance")
	defer span.End()

	if estimatedCost < 0 {
		return false, fmt.Errorf("%w: estimated cost must be non-negative", ErrInvalidInput)
	}

	status, err := s.GetBalanceStatus(ctx, userID, companyID)
	if err != nil {
		return false, err
	}

	return !status.IsBlocked && status.Balance >= estimatedCost, nil
}

// AuthorizeCall estimates the cost of a prospective call and decides whether
// it may start. The decision is advisory, settlement re-checks nothing and
// simply deducts what the call actually cost.
func (s *Service) AuthorizeCall(ctx context.Context, userID, companyID string, durationSec, ratePerMinute float64) (*types.CallAuthorization, error) {
	ctx, span := s.tracer.Start(ctx, "billing: AuthorizeCall")
	defer span.End()

	cost, err := s.estimator.EstimateCost(durationSec, ratePerMinute)
	if err != nil {
		return nil, err
	}

	status, err := s.GetBalanceStatus(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	auth := &types.CallAuthorization{
		EstimatedCost: cost,
		Status:        status,
	}

	switch {
	case status.IsBlocked:
		auth.Reason = ReasonBlocked
	case status.Balance < cost:
		auth.Reason = ReasonInsufficientBalance
	default:
		auth.Allowed = true
	}

	return auth, nil
}

// SettleCall charges a finished call. The call ID keys the deduction, so
// settling the same call twice yields the balance the first settlement left.
func (s *Service) SettleCall(ctx context.Context, userID, companyID, callID string, durationSec, ratePerMinute float64) (float64, error) {
	ctx, span := s.tracer.Start(ctx, "billing: SettleCall")
	defer span.End()

	if callID == "" {
		return 0, fmt.Errorf("%w: call ID is required", ErrInvalidInput)
	}

	cost, err := s.estimator.EstimateCost(durationSec, ratePerMinute)
	if err != nil {
		return 0, err
	}

	newBalance, err := s.gateway.Deduct(ctx, userID, companyID, callID, cost)
	if err != nil {
		return 0, fmt.Errorf("failed to settle call %s: %w", callID, err)
	}

	s.logger.Security().BalanceDeduction(userID, callID, cost)

	return newBalance, nil
}
