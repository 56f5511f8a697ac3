// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/url"

	"codeberg.org/heiditips/heiditips/server/utils"
)

// redirectWithQueryParam redirects to targetPath followed by the value of
// the given query parameter. A missing parameter redirects to the bare
// target without its trailing slash.
//
// Example:   /tips?context=projectCreation   ->   /api/tips/projectCreation
func redirectWithQueryParam(targetPath, preservedParam string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := utils.GetQueryParam(r, preservedParam)
		if value == "" {
			http.Redirect(w, r, targetPath[:len(targetPath)-1], http.StatusPermanentRedirect)

			return
		}

		http.Redirect(w, r, targetPath+url.PathEscape(value), http.StatusPermanentRedirect)
	}
}
