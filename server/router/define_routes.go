// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"time"

	"codeberg.org/heiditips/heiditips/config"
	"codeberg.org/heiditips/heiditips/core/tips"
	"codeberg.org/heiditips/heiditips/server/middleware"
	"codeberg.org/heiditips/heiditips/server/routes"
)

// DefineRoutes registers the tip API for the given collection.
//
// It does not register any middleware.
func (router *Router) DefineRoutes(c *tips.Collection) {
	h := routes.TipRoutes{Collection: c}

	router.HandleFunc("GET /api/tips", middleware.CatchError(h.Table))
	router.HandleFunc("GET /api/tips.yaml", middleware.CatchError(h.TableYAML))
	router.HandleFunc("GET /api/tips/{context}", middleware.CatchError(h.Context))
	router.HandleFunc("GET /api/tips/{context}/{step}", middleware.CatchError(h.Rotate))
	router.HandleFunc("GET /api/contexts", middleware.CatchError(h.Contexts))

	// Shorthand for clients that can only build query strings.
	router.HandleFunc("GET /tips", redirectWithQueryParam("/api/tips/", "context"))

	router.HandleFunc("GET /healthz", middleware.CatchError(routes.Health))

	// Matches only what nothing above does.
	router.HandleFunc("GET /", middleware.CatchError(routes.NotFound))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

var flightRecorder = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})

func registerDebugRoutes(router *Router) {
	if !flightRecorder.Enabled() {
		if err := flightRecorder.Start(); err != nil {
			panic(err)
		}
	}

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, r *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}
