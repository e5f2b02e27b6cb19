// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package calls

import (
	"context"
	"errors"
	"fmt"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/storage"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
)

const defaultPageSize = 50

// ErrNotAuthorized means the caller is not a member of the company whose
// call history they asked for.
var ErrNotAuthorized = errors.New("not authorized for this company")

type Service struct {
	storage StorageInterface
	tracer  tracing.TracingInterface
	logger  logging.LoggerInterface
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		logger:  logger,
	}
}

func (s *Service) requireMember(ctx context.Context, companyID, callerID string) error {
	_, err := s.storage.GetMember(ctx, companyID, callerID)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Security().AuthzFailure(callerID, "team-membership")
		return ErrNotAuthorized
	}
	if err != nil {
		return fmt.Errorf("failed to fetch membership for user %s in company %s: %w", callerID, companyID, err)
	}
	return nil
}

func (s *Service) ListCalls(ctx context.Context, callerID, companyID string, page, size int64) ([]*types.Call, error) {
	ctx, span := s.tracer.Start(ctx, "calls: ListCalls")
	defer span.End()

	if err := s.requireMember(ctx, companyID, callerID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if size < 1 || size > 500 {
		size = defaultPageSize
	}

	return s.storage.ListCallsByCompanyID(ctx, companyID, page, size)
}

func (s *Service) Summary(ctx context.Context, callerID, companyID string) (*types.CallSummary, error) {
	ctx, span := s.tracer.Start(ctx, "calls: Summary")
	defer span.End()

	if err := s.requireMember(ctx, companyID, callerID); err != nil {
		return nil, err
	}

	return s.storage.GetCallSummary(ctx, companyID)
}
