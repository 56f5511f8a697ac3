// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/heiditips/heiditips/server/request_context"
	"codeberg.org/heiditips/heiditips/server/utils"
)

// NotFound answers GET requests that match no other route.
func NotFound(w http.ResponseWriter, r *http.Request) error {
	return utils.WriteJSON(w, http.StatusNotFound, map[string]any{
		"error":      http.StatusText(http.StatusNotFound),
		"status":     http.StatusNotFound,
		"request_id": request_context.FromRequest(r).RequestID,
	})
}
