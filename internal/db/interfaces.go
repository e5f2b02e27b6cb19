// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

type DBClientInterface interface {
	Statement(context.Context) sq.StatementBuilderType
	BeginTx(context.Context) (context.Context, TxInterface, error)
	// BeginSerializableTx is used by the balance deduction and invite
	// acceptance transactions, which must not race across callers.
	BeginSerializableTx(context.Context) (context.Context, TxInterface, error)
	WithTx(context.Context, func(context.Context) error) error
	Close()
}

type TxInterface interface {
	Commit() error
	Rollback() error
	sq.BaseRunner
}
