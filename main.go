// Copyright 2026 Dr. Scale Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/drscale/console-service/cmd"

func main() {
	cmd.Execute()
}
