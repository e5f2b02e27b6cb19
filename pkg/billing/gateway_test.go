// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/drscale/console-service/internal/logging"
	"github.com/drscale/console-service/internal/tracing"
)

// flakyGateway fails a fixed number of times before succeeding, recording
// every call it sees.
type flakyGateway struct {
	failures  int
	failWith  error
	balance   float64
	callIDs   []string
	callCount int
}

func (f *flakyGateway) Deduct(ctx context.Context, userID, companyID, callID string, amount float64) (float64, error) {
	f.callCount++
	f.callIDs = append(f.callIDs, callID)
	if f.callCount <= f.failures {
		return 0, f.failWith
	}
	return f.balance, nil
}

func TestRetryingGateway_Deduct(t *testing.T) {
	t.Run("recovers from transient failures", func(t *testing.T) {
		inner := &flakyGateway{
			failures: 2,
			failWith: errors.New("connection refused"),
			balance:  9.96,
		}
		gateway := NewRetryingGateway(inner, 4, time.Millisecond, tracing.NewNoopTracer(), logging.NewNoopLogger())

		newBalance, err := gateway.Deduct(context.Background(), "user-1", "company-1", "call-42", 0.04)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if newBalance != 9.96 {
			t.Errorf("expected balance 9.96, got %v", newBalance)
		}
		if inner.callCount != 3 {
			t.Errorf("expected 3 attempts, got %d", inner.callCount)
		}
		for _, id := range inner.callIDs {
			if id != "call-42" {
				t.Errorf("call ID changed between attempts: %q", id)
			}
		}
	})

	t.Run("gives up after the attempt budget", func(t *testing.T) {
		inner := &flakyGateway{
			failures: 10,
			failWith: errors.New("connection reset by peer"),
		}
		gateway := NewRetryingGateway(inner, 4, time.Millisecond, tracing.NewNoopTracer(), logging.NewNoopLogger())

		_, err := gateway.Deduct(context.Background(), "user-1", "company-1", "call-42", 0.04)
		if err == nil {
			t.Fatal("expected an error")
		}
		if inner.callCount != 4 {
			t.Errorf("expected 4 attempts, got %d", inner.callCount)
		}
	})

	t.Run("does not retry business rejections", func(t *testing.T) {
		inner := &flakyGateway{
			failures: 10,
			failWith: ErrInsufficientBalance,
		}
		gateway := NewRetryingGateway(inner, 4, time.Millisecond, tracing.NewNoopTracer(), logging.NewNoopLogger())

		_, err := gateway.Deduct(context.Background(), "user-1", "company-1", "call-42", 0.04)
		if !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
		if inner.callCount != 1 {
			t.Errorf("expected 1 attempt, got %d", inner.callCount)
		}
	})

	t.Run("stops waiting when the context is cancelled", func(t *testing.T) {
		inner := &flakyGateway{
			failures: 10,
			failWith: errors.New("timeout"),
		}
		gateway := NewRetryingGateway(inner, 4, time.Minute, tracing.NewNoopTracer(), logging.NewNoopLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := gateway.Deduct(ctx, "user-1", "company-1", "call-42", 0.04)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if inner.callCount != 1 {
			t.Errorf("expected 1 attempt, got %d", inner.callCount)
		}
	})
}

// ledgerStore mimics the storage deduction transaction: one ledger entry
// per call ID, and a replayed call ID returns the balance the original
// deduction produced instead of deducting again.
type ledgerStore struct {
	mu      sync.Mutex
	balance float64
	ledger  map[string]float64
}

func newLedgerStore(balance float64) *ledgerStore {
	return &ledgerStore{balance: balance, ledger: make(map[string]float64)}
}

func (l *ledgerStore) DeductBalance(ctx context.Context, userID, companyID, callID string, amount float64) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if settled, ok := l.ledger[callID]; ok {
		return settled, nil
	}
	l.balance -= amount
	l.ledger[callID] = l.balance
	return l.balance, nil
}

func TestDeduct_SameCallIDDeductsOnce(t *testing.T) {
	store := newLedgerStore(10)
	gateway := NewRetryingGateway(
		NewStorageGateway(store, tracing.NewNoopTracer(), logging.NewNoopLogger()),
		4,
		time.Millisecond,
		tracing.NewNoopTracer(),
		logging.NewNoopLogger(),
	)

	first, err := gateway.Deduct(context.Background(), "user-1", "company-1", "call-42", 0.25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := gateway.Deduct(context.Background(), "user-1", "company-1", "call-42", 0.25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("replayed deduction changed the balance: first %v, second %v", first, second)
	}
	if store.balance != 9.75 {
		t.Errorf("expected a single deduction leaving 9.75, got %v", store.balance)
	}

	// A distinct call ID still deducts.
	third, err := gateway.Deduct(context.Background(), "user-1", "company-1", "call-43", 0.25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third != 9.5 {
		t.Errorf("expected balance 9.5 after a second call, got %v", third)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), expected: true},
		{name: "timeout message", err: errors.New("i/o timeout"), expected: true},
		{name: "deadline exceeded", err: context.DeadlineExceeded, expected: true},
		{name: "invalid input", err: ErrInvalidInput, expected: false},
		{name: "insufficient balance", err: ErrInsufficientBalance, expected: false},
		{name: "arbitrary failure", err: errors.New("column does not exist"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.expected {
				t.Errorf("IsTransient(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}
