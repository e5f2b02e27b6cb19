// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"github.com/drscale/console-service/internal/types"
)

// Classifier derives a balance status from a balance value and thresholds.
// Pure function of its inputs, no I/O.
type Classifier struct {
	criticalThreshold       float64
	defaultWarningThreshold float64
}

func NewClassifier(criticalThreshold, defaultWarningThreshold float64) *Classifier {
	return &Classifier{
		criticalThreshold:       criticalThreshold,
		defaultWarningThreshold: defaultWarningThreshold,
	}
}

// Classify buckets a balance. Blocked takes precedence over critical,
// critical over low. Comparisons against thresholds are strict, a balance
// exactly at a threshold has not yet crossed it and stays in the less
// restrictive state.
func (c *Classifier) Classify(balance, warningThreshold float64) types.BalanceStatus {
	if warningThreshold <= 0 {
		warningThreshold = c.defaultWarningThreshold
	}

	status := types.BalanceStatus{Balance: balance}

	switch {
	case balance <= 0:
		status.IsBlocked = true
	case balance < c.criticalThreshold:
		status.IsCritical = true
	case balance < warningThreshold:
		status.IsLow = true
	}

	return status
}
