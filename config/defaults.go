// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	defaultHost = "localhost"
	defaultPort = "8383"

	// Default HTTP cache max age in minutes.
	defaultHTTPCacheMaxAgeMinutes = 5
	// Default HTTP cache stale while revalidate in minutes.
	defaultHTTPCacheStaleWhileRevalidateMinutes = 60

	defaultLimiterRate  = 10
	defaultLimiterBurst = 20
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = defaultHost
	cfg.Basic.Port = defaultPort

	cfg.Tips.Files = nil
	cfg.Tips.IncludeBuiltIn = true

	cfg.HTTPCache.MaxAge = defaultHTTPCacheMaxAgeMinutes * time.Minute
	cfg.HTTPCache.StaleWhileRevalidate = defaultHTTPCacheStaleWhileRevalidateMinutes * time.Minute

	cfg.Limiter.Enabled = false
	cfg.Limiter.Rate = defaultLimiterRate
	cfg.Limiter.Burst = defaultLimiterBurst
	cfg.Limiter.IPv4Prefix = 24
	cfg.Limiter.IPv6Prefix = 48

	cfg.Development.InDevelopment = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
