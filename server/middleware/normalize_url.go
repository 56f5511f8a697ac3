// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// NormalizeURL is a middleware that redirects non-canonical paths:
//  1. Runs of slashes are collapsed ("/api//tips" -> "/api/tips").
//  2. Trailing slashes are removed (except root).
//
// Both rules apply to the escaped path, so an encoded slash ("%2F") inside a
// path segment is left alone.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	escaped := r.URL.EscapedPath()

	canonical := canonicalPath(escaped)
	if canonical == escaped {
		next.ServeHTTP(w, r)

		return
	}

	path, err := url.PathUnescape(canonical)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return
	}

	target := *r.URL
	target.Path = path
	target.RawPath = canonical

	// Only the path changes, so this cannot redirect off-site.
	http.Redirect(w, r, target.RequestURI(), http.StatusPermanentRedirect)
}

func canonicalPath(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return path
}
