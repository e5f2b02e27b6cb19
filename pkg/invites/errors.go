// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package invites

import "errors"

var (
	// ErrInvalidOrExpired covers every way an invite can be unusable:
	// unknown token, expired, revoked, or already consumed. Collapsing them
	// keeps the lookup endpoint from acting as a token oracle.
	ErrInvalidOrExpired = errors.New("invite is invalid or expired")

	// ErrSeatLimitReached means the company has no seat left for the invitee.
	ErrSeatLimitReached = errors.New("seat limit reached")

	// ErrAlreadyMember means the accepting user already belongs to the company.
	ErrAlreadyMember = errors.New("user is already a member")
)
