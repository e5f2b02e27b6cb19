// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package webhooks

// CallCompletedEvent is the payload the voice provider posts when a call
// ends. The call ID doubles as the settlement idempotency key, so provider
// redeliveries are harmless.
type CallCompletedEvent struct {
	CallID        string  `json:"call_id" validate:"required"`
	UserID        string  `json:"user_id" validate:"required"`
	CompanyID     string  `json:"company_id" validate:"required"`
	DurationSec   float64 `json:"duration_sec" validate:"gte=0"`
	RatePerMinute float64 `json:"rate_per_minute" validate:"gte=0"`
}

// PaymentCompletedEvent is posted by the payment provider once a top-up
// clears. The payment reference is the credit idempotency key.
type PaymentCompletedEvent struct {
	Reference string  `json:"reference" validate:"required"`
	UserID    string  `json:"user_id" validate:"required"`
	CompanyID string  `json:"company_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
}
