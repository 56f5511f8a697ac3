// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"fmt"
	"maps"
	"net/http"
	"strings"
	"time"

	"codeberg.org/heiditips/heiditips/config"
)

// noStore is the Cache-Control value for responses no cache may keep.
const noStore = "no-store"

// baseHeaders defines the default headers to be set in responses.
//
// Heiditips-Version and Heiditips-Revision are added dynamically in SetResponseHeaders.
var baseHeaders = http.Header{
	"Referrer-Policy":         {"no-referrer"},
	"X-Frame-Options":         {"DENY"},
	"X-Content-Type-Options":  {"nosniff"},
	"Content-Security-Policy": {"default-src 'none'; frame-ancestors 'none'"},
	// Tips are consumed by front-ends served from other origins.
	"Access-Control-Allow-Origin": {"*"},
}

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	headers.Set("Cache-Control", cacheControl(r.URL.Path))
	headers.Set("Heiditips-Version", config.BuildVersion)
	headers.Set("Heiditips-Revision", config.Global.Build.Revision())

	next.ServeHTTP(w, r)
}

// cacheControl returns the Cache-Control value for path.
//
// Tip content only changes on restart, so API responses may be cached for
// the configured duration. Health checks are never cached.
func cacheControl(path string) string {
	if config.Global.Development.InDevelopment || !strings.HasPrefix(path, "/api/") {
		return noStore
	}

	return fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d",
		int(config.Global.HTTPCache.MaxAge/time.Second),
		int(config.Global.HTTPCache.StaleWhileRevalidate/time.Second))
}
