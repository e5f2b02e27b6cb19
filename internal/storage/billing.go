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

	"github.com/drscale/console-service/internal/types"
)

const (
	txTypeDeduction = "deduction"
	txTypeCredit    = "credit"
)

func (s *Storage) GetBalance(ctx context.Context, userID, companyID string) (*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetBalance")
	defer span.End()

	var b types.Balance
	err := s.db.Statement(ctx).
		Select("user_id", "company_id", "balance", "warning_threshold", "updated_at").
		From("balances").
		Where(sq.Eq{"user_id": userID, "company_id": companyID}).
		QueryRowContext(ctx).
		Scan(&b.UserID, &b.CompanyID, &b.Amount, &b.WarningThreshold, &b.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return &b, nil
}

func (s *Storage) CreateBalance(ctx context.Context, b *types.Balance) (*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateBalance")
	defer span.End()

	var created types.Balance
	err := s.db.Statement(ctx).
		Insert("balances").
		Columns("user_id", "company_id", "balance", "warning_threshold").
		Values(b.UserID, b.CompanyID, b.Amount, b.WarningThreshold).
		Suffix("RETURNING user_id, company_id, balance, warning_threshold, updated_at").
		QueryRowContext(ctx).
		Scan(&created.UserID, &created.CompanyID, &created.Amount, &created.WarningThreshold, &created.UpdatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert balance: %w", err)
	}

	return &created, nil
}

// DeductBalance atomically decrements the balance and records a ledger row
// keyed by the call ID. Replaying the same call ID does not deduct again, it
// returns the balance the original deduction produced. Serializable isolation
// keeps concurrent deductions from computing against a stale balance.
func (s *Storage) DeductBalance(ctx context.Context, userID, companyID, callID string, amount float64) (float64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.DeductBalance")
	defer span.End()

	txCtx, tx, err := s.db.BeginSerializableTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Errorf("failed to rollback deduction transaction: %v", rbErr)
			}
		}
	}()

	var newBalance float64
	err = s.db.Statement(txCtx).
		Update("balances").
		Set("balance", sq.Expr("balance - ?", amount)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"user_id": userID, "company_id": companyID}).
		Suffix("RETURNING balance").
		QueryRowContext(txCtx).
		Scan(&newBalance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return 0, fmt.Errorf("failed to generate transaction ID: %w", err)
	}

	_, err = s.db.Statement(txCtx).
		Insert("balance_transactions").
		Columns("id", "user_id", "company_id", "reference", "tx_type", "amount", "balance_after").
		Values(id.String(), userID, companyID, callID, txTypeDeduction, -amount, newBalance).
		ExecContext(txCtx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			// Replay of an already settled call. Roll back the balance update
			// and report the balance the first deduction left behind.
			if rbErr := tx.Rollback(); rbErr != nil {
				return 0, fmt.Errorf("failed to rollback replayed deduction: %w", rbErr)
			}
			committed = true // nothing left to roll back
			return s.balanceAfterTransaction(ctx, callID)
		}
		return 0, fmt.Errorf("failed to record deduction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit deduction transaction: %w", err)
	}
	committed = true

	return newBalance, nil
}

// AddCredit mirrors DeductBalance for top-ups, keyed by an external payment
// reference so provider retries cannot double-credit.
func (s *Storage) AddCredit(ctx context.Context, userID, companyID, reference string, amount float64) (float64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddCredit")
	defer span.End()

	txCtx, tx, err := s.db.BeginSerializableTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Errorf("failed to rollback credit transaction: %v", rbErr)
			}
		}
	}()

	var newBalance float64
	err = s.db.Statement(txCtx).
		Update("balances").
		Set("balance", sq.Expr("balance + ?", amount)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"user_id": userID, "company_id": companyID}).
		Suffix("RETURNING balance").
		QueryRowContext(txCtx).
		Scan(&newBalance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return 0, fmt.Errorf("failed to generate transaction ID: %w", err)
	}

	_, err = s.db.Statement(txCtx).
		Insert("balance_transactions").
		Columns("id", "user_id", "company_id", "reference", "tx_type", "amount", "balance_after").
		Values(id.String(), userID, companyID, reference, txTypeCredit, amount, newBalance).
		ExecContext(txCtx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			if rbErr := tx.Rollback(); rbErr != nil {
				return 0, fmt.Errorf("failed to rollback replayed credit: %w", rbErr)
			}
			committed = true
			return s.balanceAfterTransaction(ctx, reference)
		}
		return 0, fmt.Errorf("failed to record credit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit credit transaction: %w", err)
	}
	committed = true

	return newBalance, nil
}

func (s *Storage) balanceAfterTransaction(ctx context.Context, reference string) (float64, error) {
	var balanceAfter float64
	err := s.db.Statement(ctx).
		Select("balance_after").
		From("balance_transactions").
		Where(sq.Eq{"reference": reference}).
		QueryRowContext(ctx).
		Scan(&balanceAfter)

	if err != nil {
		return 0, fmt.Errorf("failed to read replayed transaction: %w", err)
	}

	return balanceAfter, nil
}
