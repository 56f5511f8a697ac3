// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/heiditips/heiditips/config"
	"codeberg.org/heiditips/heiditips/core/audit"
	"codeberg.org/heiditips/heiditips/server/request_context"
	"codeberg.org/heiditips/heiditips/server/utils"
)

// errorBody is the JSON body sent in place of a failed handler's output.
type errorBody struct {
	Error     string `json:"error"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id"`
}

// CatchError wraps HTTP handlers that return an error, providing centralized error handling,
// response buffering, and request logging.
//
// The handler's output is buffered. If it returns an error without having
// written an error status (>= 400), the buffer is discarded and a JSON 500
// body is sent instead. Otherwise the buffered response is written as is.
//
// Error responses are never cacheable, whatever SetResponseHeaders chose.
//
// Finally, it logs the completed request via the audit package.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Destination: audit.ToUser,
			RequestID:   ctx.RequestID,
			Method:      r.Method,
			URL:         r.URL.String(),
		}

		r = r.WithContext(span.Begin(r.Context()))
		defer span.End()

		recorder := httptest.NewRecorder()

		err := handler(recorder, r)

		ctx.RequestError = err

		if ctx.RequestError != nil && recorder.Code < http.StatusBadRequest {
			ctx.StatusCode = http.StatusInternalServerError

			body := errorBody{
				Error:     http.StatusText(ctx.StatusCode),
				Status:    ctx.StatusCode,
				RequestID: ctx.RequestID,
			}

			if config.Global.Development.InDevelopment {
				body.Error = ctx.RequestError.Error()
			}

			w.Header().Set("Cache-Control", noStore)

			if writeErr := utils.WriteJSON(w, ctx.StatusCode, body); writeErr != nil {
				log.Err(writeErr).
					Str("original_error", ctx.RequestError.Error()).
					Msg("Failed to write error response")
			}
		} else {
			// A successful response or a handled error. We trust the recorder's output.
			ctx.StatusCode = recorder.Code
			maps.Copy(w.Header(), recorder.Header())

			if recorder.Code >= http.StatusBadRequest {
				w.Header().Set("Cache-Control", noStore)
			}

			w.WriteHeader(recorder.Code)

			span.Size = recorder.Body.Len()

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.End()
		span.StatusCode = ctx.StatusCode
		span.Error = ctx.RequestError

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}
