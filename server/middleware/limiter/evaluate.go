// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/heiditips/heiditips/server/request_context"
	"codeberg.org/heiditips/heiditips/server/utils"
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     string = "RateLimit-Limit"
	HeaderRateLimitRemaining string = "RateLimit-Remaining"
	HeaderRateLimitReset     string = "RateLimit-Reset"
)

// excludedPaths won't have traffic filtered by the limiter middleware.
var excludedPaths = []string{
	"/healthz",
}

// Evaluate is the limiter middleware.
//
// Requests over the network's budget get a JSON 429 response with a
// Retry-After header.
func (l *Limiter) Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	for _, path := range excludedPaths {
		if strings.HasPrefix(r.URL.Path, path) {
			next.ServeHTTP(w, r)

			return
		}
	}

	addr, ok := utils.ClientAddr(r)
	if !ok {
		log.Warn().
			Str("remote_addr", r.RemoteAddr).
			Msg("Could not determine client IP, skipping rate limit")
		next.ServeHTTP(w, r)

		return
	}

	allowed, remaining, retryAfter := l.reserve(addr)

	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(l.opts.Burst))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))

	if allowed {
		next.ServeHTTP(w, r)

		return
	}

	seconds := strconv.Itoa(int(math.Ceil(retryAfter.Seconds())))
	w.Header().Set(HeaderRateLimitReset, seconds)
	w.Header().Set("Retry-After", seconds)
	// A shared cache must not hand this client's 429 to everyone else.
	w.Header().Set("Cache-Control", "no-store")

	ctx := request_context.FromRequest(r)
	ctx.StatusCode = http.StatusTooManyRequests

	log.Info().
		Str("network", l.networkOf(addr).String()).
		Str("request_id", ctx.RequestID).
		Msg("Rate limited request")

	if err := utils.WriteJSON(w, http.StatusTooManyRequests, map[string]any{
		"error":      http.StatusText(http.StatusTooManyRequests),
		"status":     http.StatusTooManyRequests,
		"request_id": ctx.RequestID,
	}); err != nil {
		log.Err(err).Msg("Failed to write rate limit response")
	}
}
