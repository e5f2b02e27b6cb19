// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"errors"
	"math"
	"testing"
)

func TestEstimator_EstimateCost(t *testing.T) {
	estimator := NewEstimator(0.02)

	tests := []struct {
		name          string
		durationSec   float64
		ratePerMinute float64
		expectedCost  float64
		expectedErr   error
	}{
		{
			name:          "two minute call at two cents per minute",
			durationSec:   120,
			ratePerMinute: 0.02,
			expectedCost:  0.04,
		},
		{
			name:          "zero duration costs nothing",
			durationSec:   0,
			ratePerMinute: 0.02,
			expectedCost:  0,
		},
		{
			name:         "zero rate falls back to the default rate",
			durationSec:  60,
			expectedCost: 0.02,
		},
		{
			name:          "sub-minute call is billed fractionally",
			durationSec:   30,
			ratePerMinute: 0.10,
			expectedCost:  0.05,
		},
		{
			name:          "result is rounded to four decimal places",
			durationSec:   61,
			ratePerMinute: 0.02,
			expectedCost:  0.0203,
		},
		{
			name:          "negative duration is rejected",
			durationSec:   -1,
			ratePerMinute: 0.02,
			expectedErr:   ErrInvalidInput,
		},
		{
			name:          "negative rate is rejected",
			durationSec:   60,
			ratePerMinute: -0.02,
			expectedErr:   ErrInvalidInput,
		},
		{
			name:          "NaN duration is rejected",
			durationSec:   math.NaN(),
			ratePerMinute: 0.02,
			expectedErr:   ErrInvalidInput,
		},
		{
			name:          "infinite duration is rejected",
			durationSec:   math.Inf(1),
			ratePerMinute: 0.02,
			expectedErr:   ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, err := estimator.EstimateCost(tt.durationSec, tt.ratePerMinute)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cost != tt.expectedCost {
				t.Errorf("expected cost %v, got %v", tt.expectedCost, cost)
			}
		})
	}
}

func TestEstimator_EstimateCost_Monotonic(t *testing.T) {
	estimator := NewEstimator(0.02)

	var previous float64
	for durationSec := float64(0); durationSec <= 3600; durationSec += 7 {
		cost, err := estimator.EstimateCost(durationSec, 0.05)
		if err != nil {
			t.Fatalf("unexpected error at duration %v: %v", durationSec, err)
		}
		if cost < previous {
			t.Fatalf("cost decreased from %v to %v at duration %v", previous, cost, durationSec)
		}
		previous = cost
	}
}
