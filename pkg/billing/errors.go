// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/drscale/console-service/internal/storage"
)

var (
	// ErrInvalidInput marks malformed arguments to the pure billing functions.
	// Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownBalance means the balance could not be fetched. It is a
	// deny-by-default signal, distinct from a balance of zero.
	ErrUnknownBalance = errors.New("balance unavailable")

	// ErrInsufficientBalance is a business rejection from the deduction
	// backend. Never retried.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"timeout",
	"timed out",
	"temporarily unavailable",
	"unexpected eof",
	"no such host",
}

// IsTransient reports whether a deduction error is worth retrying. Business
// rejections and validation errors are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrDuplicateKey) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if storage.IsSerializationError(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}
