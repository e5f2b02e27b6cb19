// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package team

import "errors"

var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrSeatLimitReached = errors.New("seat limit reached")

	// ErrNotAuthorized means the caller is not a member of the company, or
	// holds a role that cannot perform the operation.
	ErrNotAuthorized = errors.New("not authorized for this company")
)

var validRoles = map[string]bool{
	"owner":  true,
	"admin":  true,
	"member": true,
}

// managingRoles can invite members and change roles.
var managingRoles = map[string]bool{
	"owner": true,
	"admin": true,
}
