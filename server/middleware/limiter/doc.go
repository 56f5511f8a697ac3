// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter provides network-based rate limiting for HTTP requests.

Clients are grouped by their IP network (a /24 for IPv4 and a /48 for IPv6
by default) and each network shares a token bucket. Buckets that have not
been used for LimiterExpiryDuration are dropped by a background sweeper.
*/
package limiter
