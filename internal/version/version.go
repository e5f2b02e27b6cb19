// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package version

// Version is overridden at build time via -ldflags.
var Version = "dev"
