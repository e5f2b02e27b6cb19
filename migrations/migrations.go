// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package migrations

import "embed"

//go:embed *.sql
var EmbedMigrations embed.FS
