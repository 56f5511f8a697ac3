// Copyright 2025, the HeidiTips contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/netip"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	LimiterExpiryDuration = time.Hour       // How long to keep limiters in memory before cleanup.
	CleanupInterval       = 5 * time.Minute // Interval between limiter cleanup runs.
)

// Options configures a Limiter.
type Options struct {
	Rate       float64 // Tokens per second for a network.
	Burst      int     // Maximum tokens for a network.
	IPv4Prefix int
	IPv6Prefix int
}

// limiterWrapper holds a rate limiter and additional metadata.
type limiterWrapper struct {
	limiter    *rate.Limiter
	mu         sync.Mutex // guards lastAccess
	lastAccess time.Time
}

// Limiter tracks one token bucket per client network.
type Limiter struct {
	opts     Options
	limiters sync.Map // netip.Prefix -> *limiterWrapper
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// New creates a Limiter and starts its cleanup loop. Call Close to stop it.
func New(opts Options) *Limiter {
	return newLimiter(opts, time.Now)
}

func newLimiter(opts Options, now func() time.Time) *Limiter {
	l := &Limiter{
		opts: opts,
		now:  now,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go l.cleanupLoop()

	log.Info().
		Float64("rate", opts.Rate).
		Int("burst", opts.Burst).
		Msg("Limiter enabled")

	return l
}

// Close stops the cleanup loop. It is safe to call more than once.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() {
		close(l.stop)
		<-l.done
	})
}

// networkOf returns the network prefix that addr is rate limited under.
func (l *Limiter) networkOf(addr netip.Addr) netip.Prefix {
	bits := l.opts.IPv6Prefix
	if addr.Is4() {
		bits = l.opts.IPv4Prefix
	}

	network, err := addr.Prefix(bits)
	if err != nil {
		// Out of range prefix lengths are rejected by config validation;
		// fall back to the single address.
		return netip.PrefixFrom(addr, addr.BitLen())
	}

	return network
}

// reserve takes one token for addr's network.
//
// It returns the bucket state after the attempt and, when the request was
// refused, how long the client should wait before retrying.
func (l *Limiter) reserve(addr netip.Addr) (allowed bool, remaining int, retryAfter time.Duration) {
	network := l.networkOf(addr)
	now := l.now()

	value, _ := l.limiters.LoadOrStore(network, &limiterWrapper{
		limiter:    rate.NewLimiter(rate.Limit(l.opts.Rate), l.opts.Burst),
		lastAccess: now,
	})

	wrapper, ok := value.(*limiterWrapper)
	if !ok {
		return true, l.opts.Burst, 0
	}

	wrapper.mu.Lock()
	wrapper.lastAccess = now
	wrapper.mu.Unlock()

	reservation := wrapper.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)

		return false, 0, delay
	}

	return true, int(wrapper.limiter.TokensAt(now)), 0
}

func (l *Limiter) cleanupLoop() {
	defer close(l.done)

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.cleanupExpiredLimiters()
		}
	}
}

// cleanupExpiredLimiters drops buckets idle for longer than LimiterExpiryDuration.
func (l *Limiter) cleanupExpiredLimiters() {
	start := l.now()
	removed := 0

	l.limiters.Range(func(key, value any) bool {
		wrapper, ok := value.(*limiterWrapper)
		if !ok {
			l.limiters.Delete(key)

			return true
		}

		wrapper.mu.Lock()
		expired := start.Sub(wrapper.lastAccess) > LimiterExpiryDuration
		wrapper.mu.Unlock()

		if expired {
			l.limiters.Delete(key)

			removed++
		}

		return true
	})

	log.Debug().
		Int("removed", removed).
		Dur("dur", time.Since(start)).
		Msg("Limiter cleanup")
}
