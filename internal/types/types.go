// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"time"
)

type Company struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	SeatLimit int       `db:"seat_limit" json:"seat_limit"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Enabled   bool      `db:"enabled" json:"enabled"`
}

type Membership struct {
	ID        string    `db:"id" json:"id"`
	CompanyID string    `db:"company_id" json:"team_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Invite lifecycle. Expiry is checked lazily at read time, there is no
// background sweep flipping pending invites to expired.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusExpired  = "expired"
	InviteStatusRevoked  = "revoked"
)

type Invite struct {
	ID        string    `db:"id" json:"id"`
	Token     string    `db:"token" json:"token"`
	CompanyID string    `db:"company_id" json:"team_id"`
	Email     string    `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	Status    string    `db:"status" json:"status"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (i *Invite) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Balance is the prepaid calling credit for a user within a company.
// The amount is only ever mutated by the deduction and credit transactions,
// never deleted. It may go negative as a settlement artifact, after which
// the account is blocked.
type Balance struct {
	UserID           string    `db:"user_id"`
	CompanyID        string    `db:"company_id"`
	Amount           float64   `db:"balance"`
	WarningThreshold float64   `db:"warning_threshold"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// BalanceStatus is derived from a Balance on every read, never stored.
type BalanceStatus struct {
	Balance    float64 `json:"balance"`
	IsLow      bool    `json:"is_low"`
	IsCritical bool    `json:"is_critical"`
	IsBlocked  bool    `json:"is_blocked"`
}

type SeatUsage struct {
	CompanyID string `json:"company_id"`
	SeatsUsed int    `json:"seats_used"`
	SeatLimit int    `json:"seat_limit"`
}

type Call struct {
	ID            string    `db:"id" json:"id"`
	CompanyID     string    `db:"company_id" json:"team_id"`
	UserID        string    `db:"user_id" json:"user_id"`
	DurationSec   float64   `db:"duration_sec" json:"duration_sec"`
	RatePerMinute float64   `db:"rate_per_minute" json:"rate_per_minute"`
	Cost          float64   `db:"cost" json:"cost"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CallSummary struct {
	TotalCalls       int64   `json:"total_calls"`
	TotalDurationSec float64 `json:"total_duration_sec"`
	TotalCost        float64 `json:"total_cost"`
}

// CallAuthorization is the outcome of the client-side balance pre-check.
// It is advisory, the deduction transaction remains the authority.
type CallAuthorization struct {
	Allowed       bool           `json:"allowed"`
	EstimatedCost float64        `json:"estimated_cost"`
	Reason        string         `json:"reason,omitempty"`
	Status        *BalanceStatus `json:"status,omitempty"`
}

// InvitePreview is what the lookup endpoint exposes about a valid invite.
type InvitePreview struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	CompanyID   string `json:"team_id"`
	CompanyName string `json:"team_name"`
	Token       string `json:"token"`
}
