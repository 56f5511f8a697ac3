// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/heiditips/heiditips/config"
	"codeberg.org/heiditips/heiditips/server/middleware"
	"codeberg.org/heiditips/heiditips/server/middleware/limiter"
	"codeberg.org/heiditips/heiditips/server/middleware/set_request_context"
)

// RegisterMiddleware installs the middleware chain.
//
// The returned limiter is nil unless rate limiting is enabled; the caller
// closes it on shutdown.
func (router *Router) RegisterMiddleware() *limiter.Limiter {
	var l *limiter.Limiter

	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL)                // collapse slashes, drop trailing slash
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all responses need this

	if config.Global.Limiter.Enabled {
		l = limiter.New(limiter.Options{
			Rate:       float64(config.Global.Limiter.Rate),
			Burst:      config.Global.Limiter.Burst,
			IPv4Prefix: config.Global.Limiter.IPv4Prefix,
			IPv6Prefix: config.Global.Limiter.IPv6Prefix,
		})

		router.Use(l.Evaluate)
	}

	router.Use(middleware.Compress)

	return l
}
