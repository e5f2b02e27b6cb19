// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/drscale/console-service/internal/db"
	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/monitoring"
	"github.com/drscale/console-service/internal/tracing"
	"github.com/drscale/console-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCompany")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate company ID: %w", err)
	}

	var created types.Company
	err = s.db.Statement(ctx).
		Insert("companies").
		Columns("id", "name", "seat_limit", "enabled").
		Values(id.String(), c.Name, c.SeatLimit, c.Enabled).
		Suffix("RETURNING id, name, seat_limit, created_at, enabled").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Name, &created.SeatLimit, &created.CreatedAt, &created.Enabled)

	if err != nil {
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetCompanyByID(ctx context.Context, id string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCompanyByID")
	defer span.End()

	var c types.Company
	err := s.db.Statement(ctx).
		Select("id", "name", "seat_limit", "created_at", "enabled").
		From("companies").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&c.ID, &c.Name, &c.SeatLimit, &c.CreatedAt, &c.Enabled)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &c, nil
}

func (s *Storage) ListCompaniesByUserID(ctx context.Context, userID string) ([]*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCompaniesByUserID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("c.id", "c.name", "c.seat_limit", "c.created_at", "c.enabled").
		From("companies c").
		Join("memberships m ON c.id = m.company_id").
		Where(sq.Eq{"m.user_id": userID, "c.enabled": true})

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*types.Company
	for rows.Next() {
		var c types.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.SeatLimit, &c.CreatedAt, &c.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return companies, nil
}

func (s *Storage) AddMember(ctx context.Context, companyID, userID, role string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate membership ID: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("memberships").
		Columns("id", "company_id", "user_id", "role").
		Values(id.String(), companyID, userID, role).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return "", ErrForeignKeyViolation
		}
		return "", fmt.Errorf("failed to add member: %w", err)
	}

	return id.String(), nil
}

func (s *Storage) UpdateMember(ctx context.Context, companyID, userID, role string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMember")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("memberships").
		Set("role", role).
		Where(sq.Eq{
			"company_id": companyID,
			"user_id":    userID,
		}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) GetMember(ctx context.Context, companyID, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMember")
	defer span.End()

	var m types.Membership
	err := s.db.Statement(ctx).
		Select("id", "company_id", "user_id", "role", "created_at").
		From("memberships").
		Where(sq.Eq{
			"company_id": companyID,
			"user_id":    userID,
		}).
		QueryRowContext(ctx).
		Scan(&m.ID, &m.CompanyID, &m.UserID, &m.Role, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &m, nil
}

func (s *Storage) ListMembersByCompanyID(ctx context.Context, companyID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersByCompanyID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "company_id", "user_id", "role", "created_at").
		From("memberships").
		Where(sq.Eq{"company_id": companyID})

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*types.Membership
	for rows.Next() {
		var m types.Membership
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

func (s *Storage) GetSeatUsage(ctx context.Context, companyID string) (*types.SeatUsage, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSeatUsage")
	defer span.End()

	var usage types.SeatUsage
	usage.CompanyID = companyID

	err := s.db.Statement(ctx).
		Select("seat_limit").
		From("companies").
		Where(sq.Eq{"id": companyID}).
		QueryRowContext(ctx).
		Scan(&usage.SeatLimit)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get seat limit: %w", err)
	}

	err = s.db.Statement(ctx).
		Select("COUNT(*)").
		From("memberships").
		Where(sq.Eq{"company_id": companyID}).
		QueryRowContext(ctx).
		Scan(&usage.SeatsUsed)

	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	return &usage, nil
}

func (s *Storage) CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvite")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite ID: %w", err)
	}

	var created types.Invite
	err = s.db.Statement(ctx).
		Insert("invites").
		Columns("id", "token", "company_id", "email", "role", "status", "expires_at").
		Values(id.String(), invite.Token, invite.CompanyID, invite.Email, invite.Role, types.InviteStatusPending, invite.ExpiresAt).
		Suffix("RETURNING id, token, company_id, email, role, status, expires_at, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Token, &created.CompanyID, &created.Email, &created.Role, &created.Status, &created.ExpiresAt, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert invite: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetInviteByToken(ctx context.Context, token string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInviteByToken")
	defer span.End()

	var i types.Invite
	err := s.db.Statement(ctx).
		Select("id", "token", "company_id", "email", "role", "status", "expires_at", "created_at").
		From("invites").
		Where(sq.Eq{"token": token}).
		QueryRowContext(ctx).
		Scan(&i.ID, &i.Token, &i.CompanyID, &i.Email, &i.Role, &i.Status, &i.ExpiresAt, &i.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return &i, nil
}

// AcceptInvite consumes a pending invite and creates the membership in a
// single serializable transaction. The invite status and the seat count are
// both re-validated inside the transaction, the earlier client-facing checks
// are advisory only.
func (s *Storage) AcceptInvite(ctx context.Context, inviteID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.AcceptInvite")
	defer span.End()

	txCtx, tx, err := s.db.BeginSerializableTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Errorf("failed to rollback accept invite transaction: %v", rbErr)
			}
		}
	}()

	// Consume the invite only if it is still pending and unexpired.
	var companyID, role string
	err = s.db.Statement(txCtx).
		Update("invites").
		Set("status", types.InviteStatusAccepted).
		Where(sq.Eq{"id": inviteID, "status": types.InviteStatusPending}).
		Where(sq.Gt{"expires_at": time.Now()}).
		Suffix("RETURNING company_id, role").
		QueryRowContext(txCtx).
		Scan(&companyID, &role)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to consume invite: %w", err)
	}

	membershipID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate membership ID: %w", err)
	}

	_, err = s.db.Statement(txCtx).
		Insert("memberships").
		Columns("id", "company_id", "user_id", "role").
		Values(membershipID.String(), companyID, userID, role).
		ExecContext(txCtx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}

	// Authoritative seat re-count. Concurrent acceptances near the limit
	// serialize here, the loser aborts.
	var seatsUsed, seatLimit int
	err = s.db.Statement(txCtx).
		Select("COUNT(*)").
		From("memberships").
		Where(sq.Eq{"company_id": companyID}).
		QueryRowContext(txCtx).
		Scan(&seatsUsed)
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}

	err = s.db.Statement(txCtx).
		Select("seat_limit").
		From("companies").
		Where(sq.Eq{"id": companyID}).
		QueryRowContext(txCtx).
		Scan(&seatLimit)
	if err != nil {
		return fmt.Errorf("failed to get seat limit: %w", err)
	}

	if seatsUsed > seatLimit {
		return ErrSeatLimitExceeded
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit accept invite transaction: %w", err)
	}
	committed = true

	return nil
}
