// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

// tipsctl inspects, validates and exports tip tables without running the server.
package main

import (
	"os"

	"codeberg.org/heiditips/heiditips/core/audit"
)

func main() {
	audit.SetDefaultLogger()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
