// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// WriteJSON writes v as the JSON response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(append(body, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// ClientAddr returns the IP address of the client that sent r.
//
// X-Forwarded-For is only trusted when the direct peer is a private or
// loopback address, i.e. a reverse proxy in front of the service.
func ClientAddr(r *http.Request) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	peer, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}

	peer = peer.Unmap()

	if peer.IsPrivate() || peer.IsLoopback() {
		if forwarded, ok := firstForwardedFor(r); ok {
			return forwarded, true
		}
	}

	return peer, true
}

func firstForwardedFor(r *http.Request) (netip.Addr, bool) {
	header := r.Header.Get("X-Forwarded-For")
	if header == "" {
		return netip.Addr{}, false
	}

	first, _, _ := strings.Cut(header, ",")

	addr, err := netip.ParseAddr(strings.TrimSpace(first))
	if err != nil {
		return netip.Addr{}, false
	}

	return addr.Unmap(), true
}
