// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
These tests call load directly so the -config flag is not parsed from the
test binary's arguments. They use t.Setenv and therefore cannot run in
parallel.
*/

func TestLoadDefaults(t *testing.T) {
	cfg := &ServerConfig{}

	require.NoError(t, cfg.load(""))

	assert.Equal(t, "localhost", cfg.Basic.Host)
	assert.Equal(t, "8383", cfg.Basic.Port)
	assert.True(t, cfg.Tips.IncludeBuiltIn)
	assert.Empty(t, cfg.Tips.Files)
	assert.Equal(t, 5*time.Minute, cfg.HTTPCache.MaxAge)
	assert.False(t, cfg.Limiter.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *ServerConfig)
	}{
		{
			name: "Valid configuration",
			env: map[string]string{
				"HEIDITIPS_HOST":       "0.0.0.0",
				"HEIDITIPS_PORT":       "9000",
				"HEIDITIPS_TIPS_FILES": "tips/a.yaml, tips/b.json",
			},
			check: func(t *testing.T, cfg *ServerConfig) {
				t.Helper()

				assert.Equal(t, "0.0.0.0", cfg.Basic.Host)
				assert.Equal(t, "9000", cfg.Basic.Port)
				assert.Equal(t, []string{"tips/a.yaml", "tips/b.json"}, cfg.Tips.Files)
			},
		},
		{
			name: "Durations and booleans",
			env: map[string]string{
				"HEIDITIPS_CACHE_CONTROL_MAX_AGE": "90s",
				"HEIDITIPS_TIPS_INCLUDE_BUILTIN":  "false",
				"HEIDITIPS_LIMITER":               "true",
				"HEIDITIPS_LIMITER_RATE":          "3",
			},
			check: func(t *testing.T, cfg *ServerConfig) {
				t.Helper()

				assert.Equal(t, 90*time.Second, cfg.HTTPCache.MaxAge)
				assert.False(t, cfg.Tips.IncludeBuiltIn)
				assert.True(t, cfg.Limiter.Enabled)
				assert.Equal(t, 3, cfg.Limiter.Rate)
			},
		},
		{
			name:    "Invalid duration",
			env:     map[string]string{"HEIDITIPS_CACHE_CONTROL_MAX_AGE": "soon"},
			wantErr: true,
		},
		{
			name:    "Unknown tip file format",
			env:     map[string]string{"HEIDITIPS_TIPS_FILES": "tips.txt"},
			wantErr: true,
		},
		{
			name:    "Invalid log level",
			env:     map[string]string{"HEIDITIPS_LOG_LEVEL": "chatty"},
			wantErr: true,
		},
		{
			name: "Limiter with zero burst",
			env: map[string]string{
				"HEIDITIPS_LIMITER":       "true",
				"HEIDITIPS_LIMITER_BURST": "0",
			},
			wantErr: true,
		},
		{
			name: "Unix socket with explicit port",
			env: map[string]string{
				"HEIDITIPS_UNIXSOCKET": "/tmp/heiditips.sock",
				"HEIDITIPS_PORT":       "9000",
			},
			wantErr: true,
		},
		{
			name: "Unix socket with symbolic permissions",
			env: map[string]string{
				"HEIDITIPS_UNIXSOCKET":             "/tmp/heiditips.sock",
				"HEIDITIPS_UNIXSOCKET_PERMISSIONS": "rw-rw----",
			},
			check: func(t *testing.T, cfg *ServerConfig) {
				t.Helper()

				assert.Empty(t, cfg.Basic.Host)
				assert.Empty(t, cfg.Basic.Port)
				assert.Equal(t, os.FileMode(0o660), cfg.Basic.UnixSocketPermissions)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := &ServerConfig{}

			err := cfg.load("")
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
basic:
  port: "7000"
tips:
  files:
    - ./from-yaml.yaml
  includeBuiltIn: false
log:
  logLevel: warn
`), 0o600))

	t.Setenv("HEIDITIPS_PORT", "7100")

	cfg := &ServerConfig{}
	require.NoError(t, cfg.load(path))

	assert.Equal(t, "7100", cfg.Basic.Port)
	assert.Equal(t, []string{"./from-yaml.yaml"}, cfg.Tips.Files)
	assert.False(t, cfg.Tips.IncludeBuiltIn)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestParseFileMode(t *testing.T) {
	t.Parallel()

	tests := map[string]os.FileMode{
		"":          0o666,
		"660":       0o660,
		"0600":      0o600,
		"rwxr-x---": 0o750,
	}

	for raw, want := range tests {
		got, err := parseFileMode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := parseFileMode("999")
	assert.ErrorIs(t, err, errUnixSocketInvalidPermissions)
}

func TestShouldSkipServerLogging(t *testing.T) {
	t.Parallel()

	cfg := &ServerConfig{}

	assert.True(t, cfg.ShouldSkipServerLogging("/healthz"))
	assert.False(t, cfg.ShouldSkipServerLogging("/api/tips"))

	cfg.Development.InDevelopment = true
	assert.False(t, cfg.ShouldSkipServerLogging("/healthz"))
}
