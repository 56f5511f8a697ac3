// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/heiditips/heiditips/config"
)

func defaults() *config.ServerConfig {
	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	return cfg
}

func TestRenderEnv(t *testing.T) {
	t.Parallel()

	out := renderEnv(defaults())

	assert.Contains(t, out, "## Basic\n")
	assert.Contains(t, out, "HEIDITIPS_PORT=\"8383\"\n")
	assert.Contains(t, out, "HEIDITIPS_HOST=\"localhost\"\n")
	assert.Contains(t, out, "# HEIDITIPS_TIPS_INCLUDE_BUILTIN=true\n")
	assert.Contains(t, out, "# HEIDITIPS_LOG_OUTPUTS=/dev/stderr\n")
	assert.Contains(t, out, "# HEIDITIPS_UNIXSOCKET=\n")
	assert.NotContains(t, out, "## Build")
}

func TestRenderYAML(t *testing.T) {
	t.Parallel()

	out, err := renderYAML(defaults())
	require.NoError(t, err)

	assert.Contains(t, out, "\nbasic:\n")
	assert.Contains(t, out, "\ntips:\n")
	assert.Contains(t, out, "  # port: \"8383\"\n")
	assert.NotContains(t, out, "\n  port:")
}
