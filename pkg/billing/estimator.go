// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"fmt"
	"math"
)

// Estimator computes prospective call costs. Amounts are rounded to four
// decimal places, the precision the provider settles at.
type Estimator struct {
	defaultRatePerMinute float64
}

func NewEstimator(defaultRatePerMinute float64) *Estimator {
	return &Estimator{defaultRatePerMinute: defaultRatePerMinute}
}

// EstimateCost maps (duration, rate) to a monetary cost. A zero rate means
// "not supplied" and falls back to the configured default rate.
func (e *Estimator) EstimateCost(durationSec, ratePerMinute float64) (float64, error) {
	if durationSec < 0 || math.IsNaN(durationSec) || math.IsInf(durationSec, 0) {
		return 0, fmt.Errorf("%w: duration must be a non-negative finite number", ErrInvalidInput)
	}
	if ratePerMinute < 0 || math.IsNaN(ratePerMinute) || math.IsInf(ratePerMinute, 0) {
		return 0, fmt.Errorf("%w: rate must be a non-negative finite number", ErrInvalidInput)
	}

	if ratePerMinute == 0 {
		ratePerMinute = e.defaultRatePerMinute
	}

	return round4(durationSec / 60 * ratePerMinute), nil
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
