// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package team

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/monitoring"
	"github.com/drscale/console-service/internal/storage"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
)

type Service struct {
	storage            StorageInterface
	defaultSeatLimit   int
	signupCredit       float64
	warningThreshold   float64
	invitationLifetime time.Duration
	tracer             tracing.TracingInterface
	monitor            monitoring.MonitorInterface
	logger             logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	defaultSeatLimit int,
	signupCredit float64,
	warningThreshold float64,
	invitationLifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:            storage,
		defaultSeatLimit:   defaultSeatLimit,
		signupCredit:       signupCredit,
		warningThreshold:   warningThreshold,
		invitationLifetime: invitationLifetime,
		tracer:             tracer,
		monitor:            monitor,
		logger:             logger,
	}
}

// CreateCompany provisions a company with its creating user as owner and an
// initial balance, so the first call authorization after signup finds a row.
func (s *Service) CreateCompany(ctx context.Context, name, ownerID string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "team: CreateCompany")
	defer span.End()

	if name == "" || ownerID == "" {
		return nil, fmt.Errorf("company name and owner are required")
	}

	created, err := s.storage.CreateCompany(ctx, &types.Company{
		Name:      name,
		SeatLimit: s.defaultSeatLimit,
		Enabled:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	if _, err := s.storage.AddMember(ctx, created.ID, ownerID, "owner"); err != nil {
		return nil, fmt.Errorf("failed to add owner to company %s: %w", created.ID, err)
	}

	_, err = s.storage.CreateBalance(ctx, &types.Balance{
		UserID:           ownerID,
		CompanyID:        created.ID,
		Amount:           s.signupCredit,
		WarningThreshold: s.warningThreshold,
	})
	if err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
		// Balance provisioning also happens lazily on first read, so the
		// company stays usable.
		s.logger.Errorf("failed to provision balance for owner %s in company %s: %v", ownerID, created.ID, err)
	}

	s.logger.Infof("company %s created by user %s", created.ID, ownerID)

	return created, nil
}

func (s *Service) ListCompanies(ctx context.Context, userID string) ([]*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "team: ListCompanies")
	defer span.End()

	return s.storage.ListCompaniesByUserID(ctx, userID)
}

// requireRole loads the caller's membership in the company and checks it
// against the allowed roles. A caller without a membership row is treated
// the same as one with an insufficient role.
func (s *Service) requireRole(ctx context.Context, companyID, callerID string, allowed map[string]bool) error {
	member, err := s.storage.GetMember(ctx, companyID, callerID)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Security().AuthzFailure(callerID, "team-membership")
		return ErrNotAuthorized
	}
	if err != nil {
		return fmt.Errorf("failed to fetch membership for user %s in company %s: %w", callerID, companyID, err)
	}

	if !allowed[member.Role] {
		s.logger.Security().AuthzFailure(callerID, "team-role")
		return ErrNotAuthorized
	}

	return nil
}

func (s *Service) ListMembers(ctx context.Context, callerID, companyID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "team: ListMembers")
	defer span.End()

	if err := s.requireRole(ctx, companyID, callerID, validRoles); err != nil {
		return nil, err
	}

	return s.storage.ListMembersByCompanyID(ctx, companyID)
}

func (s *Service) UpdateMemberRole(ctx context.Context, callerID, companyID, userID, role string) error {
	ctx, span := s.tracer.Start(ctx, "team: UpdateMemberRole")
	defer span.End()

	if !validRoles[role] {
		return fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	if err := s.requireRole(ctx, companyID, callerID, managingRoles); err != nil {
		return err
	}

	return s.storage.UpdateMember(ctx, companyID, userID, role)
}

// InviteMember issues a single-use invite token. The seat check here only
// stops obviously futile invites, acceptance re-checks inside a transaction.
func (s *Service) InviteMember(ctx context.Context, callerID, companyID, email, role string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "team: InviteMember")
	defer span.End()

	if !validRoles[role] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	if err := s.requireRole(ctx, companyID, callerID, managingRoles); err != nil {
		return nil, err
	}

	usage, err := s.storage.GetSeatUsage(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seat usage for company %s: %w", companyID, err)
	}
	if usage.SeatsUsed >= usage.SeatLimit {
		return nil, ErrSeatLimitReached
	}

	invite, err := s.storage.CreateInvite(ctx, &types.Invite{
		Token:     uuid.NewString(),
		CompanyID: companyID,
		Email:     email,
		Role:      role,
		Status:    types.InviteStatusPending,
		ExpiresAt: time.Now().Add(s.invitationLifetime),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create invite for %s: %w", email, err)
	}

	s.logger.Infof("invite %s issued for %s in company %s", invite.ID, email, companyID)

	return invite, nil
}

func (s *Service) GetSeatUsage(ctx context.Context, callerID, companyID string) (*types.SeatUsage, error) {
	ctx, span := s.tracer.Start(ctx, "team: GetSeatUsage")
	defer span.End()

	if err := s.requireRole(ctx, companyID, callerID, validRoles); err != nil {
		return nil, err
	}

	return s.storage.GetSeatUsage(ctx, companyID)
}
