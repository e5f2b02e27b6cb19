// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/drscale/console-service/internal/db"
	"github.com/drscale/console-service/internal/types"
)

func (s *Storage) CreateCall(ctx context.Context, call *types.Call) (*types.Call, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCall")
	defer span.End()

	var created types.Call
	err := s.db.Statement(ctx).
		Insert("calls").
		Columns("id", "company_id", "user_id", "duration_sec", "rate_per_minute", "cost").
		Values(call.ID, call.CompanyID, call.UserID, call.DurationSec, call.RatePerMinute, call.Cost).
		Suffix("RETURNING id, company_id, user_id, duration_sec, rate_per_minute, cost, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.CompanyID, &created.UserID, &created.DurationSec, &created.RatePerMinute, &created.Cost, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert call: %w", err)
	}

	return &created, nil
}

func (s *Storage) ListCallsByCompanyID(ctx context.Context, companyID string, page, size int64) ([]*types.Call, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCallsByCompanyID")
	defer span.End()

	pageSize := db.PageSize(size)
	query := s.db.Statement(ctx).
		Select("id", "company_id", "user_id", "duration_sec", "rate_per_minute", "cost", "created_at").
		From("calls").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("created_at DESC").
		Offset(db.Offset(page, pageSize)).
		Limit(pageSize)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}
	defer rows.Close()

	var calls []*types.Call
	for rows.Next() {
		var c types.Call
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.UserID, &c.DurationSec, &c.RatePerMinute, &c.Cost, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan call: %w", err)
		}
		calls = append(calls, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return calls, nil
}

func (s *Storage) GetCallSummary(ctx context.Context, companyID string) (*types.CallSummary, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCallSummary")
	defer span.End()

	var summary types.CallSummary
	err := s.db.Statement(ctx).
		Select("COUNT(*)", "COALESCE(SUM(duration_sec), 0)", "COALESCE(SUM(cost), 0)").
		From("calls").
		Where(sq.Eq{"company_id": companyID}).
		QueryRowContext(ctx).
		Scan(&summary.TotalCalls, &summary.TotalDurationSec, &summary.TotalCost)

	if err != nil {
		return nil, fmt.Errorf("failed to get call summary: %w", err)
	}

	return &summary, nil
}
