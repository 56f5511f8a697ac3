// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryRedirect(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/tips?context=projectCreation": "/api/tips/projectCreation",
		"/tips?context=a%2Fb":           "/api/tips/a%2Fb",
		"/tips":                         "/api/tips",
	}

	for target, expectedLocation := range tests {
		rr := httptest.NewRecorder()

		redirectWithQueryParam("/api/tips/", "context").ServeHTTP(
			rr,
			httptest.NewRequest(http.MethodGet, target, nil))

		if rr.Code != http.StatusPermanentRedirect {
			t.Errorf("%s: handler returned wrong status code: got %v want %v", target, rr.Code, http.StatusPermanentRedirect)
		}

		location := rr.Header().Get("Location")
		if location != expectedLocation {
			t.Errorf("%s: handler returned wrong Location header: got %q want %q", target, location, expectedLocation)
		}
	}
}
