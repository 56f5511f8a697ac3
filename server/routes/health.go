// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/heiditips/heiditips/server/utils"
)

// Health handles GET /healthz.
func Health(w http.ResponseWriter, r *http.Request) error {
	return utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
