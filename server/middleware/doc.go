// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides the HTTP middleware chain of HeidiTips.

Middleware are registered in (*router.Router).RegisterMiddleware; the first
registered one is the outermost. CatchError is not part of the chain but
wraps each fallible route handler.
*/
package middleware
