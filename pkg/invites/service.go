// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package invites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/storage"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
)

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

// Lookup resolves an invite token into a preview the signup flow can show.
// Unknown, expired, revoked, and consumed tokens are indistinguishable to
// the caller.
func (s *Service) Lookup(ctx context.Context, token string) (*types.InvitePreview, error) {
	ctx, span := s.tracer.Start(ctx, "invites: Lookup")
	defer span.End()

	invite, err := s.usableInvite(ctx, token)
	if err != nil {
		return nil, err
	}

	company, err := s.storage.GetCompanyByID(ctx, invite.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company %s: %w", invite.CompanyID, err)
	}

	return &types.InvitePreview{
		Email:       invite.Email,
		Role:        invite.Role,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Token:       invite.Token,
	}, nil
}

// Accept consumes a pending invite and adds the user to the company. The
// status transition, membership insert, and seat re-count all happen inside
// one serializable transaction in the storage layer, so two racing accepts
// of the last seat cannot both land. The seat check here is only an early
// exit for the common case.
func (s *Service) Accept(ctx context.Context, token, userID string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "invites: Accept")
	defer span.End()

	invite, err := s.usableInvite(ctx, token)
	if err != nil {
		return nil, err
	}

	usage, err := s.storage.GetSeatUsage(ctx, invite.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seat usage for company %s: %w", invite.CompanyID, err)
	}
	if usage.SeatsUsed >= usage.SeatLimit {
		return nil, ErrSeatLimitReached
	}

	err = s.storage.AcceptInvite(ctx, invite.ID, userID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// Someone consumed or revoked the invite between our read and the
		// transaction.
		return nil, ErrInvalidOrExpired
	case errors.Is(err, storage.ErrDuplicateKey):
		return nil, ErrAlreadyMember
	case errors.Is(err, storage.ErrSeatLimitExceeded):
		return nil, ErrSeatLimitReached
	case err != nil:
		return nil, fmt.Errorf("failed to accept invite %s: %w", invite.ID, err)
	}

	s.logger.Infof("user %s joined company %s via invite %s", userID, invite.CompanyID, invite.ID)

	company, err := s.storage.GetCompanyByID(ctx, invite.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company %s: %w", invite.CompanyID, err)
	}

	return company, nil
}

func (s *Service) usableInvite(ctx context.Context, token string) (*types.Invite, error) {
	if token == "" {
		return nil, ErrInvalidOrExpired
	}

	invite, err := s.storage.GetInviteByToken(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidOrExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invite: %w", err)
	}

	if invite.Status != types.InviteStatusPending || invite.IsExpired(time.Now()) {
		return nil, ErrInvalidOrExpired
	}

	return invite, nil
}
