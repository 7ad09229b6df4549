package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

const (
	GroupUsers    = "users"
	GroupFlights  = "flights"
	GroupBookings = "bookings"
	GroupPricing  = "pricing"
	GroupExternal = "external"
)

var ErrUnknownGroup = errors.New("ratelimit: unknown endpoint group")

func Groups() []string {
	return []string{GroupUsers, GroupFlights, GroupBookings, GroupPricing, GroupExternal}
}

type Limit struct {
	RPS   float64
	Burst int
}

// Config holds the default bucket and per-group overrides. Zero fields in
// an override fall back to Default.
type Config struct {
	Default Limit
	Groups  map[string]Limit
}

func DefaultConfig() Config {
	return Config{
		Default: Limit{RPS: 10, Burst: 20},
		Groups: map[string]Limit{
			GroupExternal: {RPS: 2, Burst: 4},
		},
	}
}

// EndpointLimiter paces outgoing API calls with one token bucket per
// endpoint group. Buckets are fixed at construction. It only delays a call;
// nothing is retried.
type EndpointLimiter struct {
	buckets map[string]*rate.Limiter
	limits  map[string]Limit
}

func NewEndpointLimiter(cfg Config) *EndpointLimiter {
	l := &EndpointLimiter{
		buckets: make(map[string]*rate.Limiter),
		limits:  make(map[string]Limit),
	}
	for _, group := range Groups() {
		lim := resolve(cfg.Default, cfg.Groups[group])
		every := rate.Inf
		if lim.RPS > 0 {
			every = rate.Limit(lim.RPS)
		}
		l.buckets[group] = rate.NewLimiter(every, lim.Burst)
		l.limits[group] = lim
	}
	return l
}

func NewEndpointLimiterWithDefaults() *EndpointLimiter {
	return NewEndpointLimiter(DefaultConfig())
}

func resolve(def, override Limit) Limit {
	out := def
	if override.RPS > 0 {
		out.RPS = override.RPS
	}
	if override.Burst > 0 {
		out.Burst = override.Burst
	}
	if out.Burst < 1 {
		out.Burst = 1
	}
	return out
}

func (l *EndpointLimiter) Limit(group string) (Limit, bool) {
	lim, ok := l.limits[group]
	return lim, ok
}

// Wait holds the caller until group may send and returns how long it was
// held. A nil limiter never waits. A slot that cannot come before the ctx
// deadline fails at once with context.DeadlineExceeded.
func (l *EndpointLimiter) Wait(ctx context.Context, group string) (time.Duration, error) {
	if l == nil {
		return 0, nil
	}
	bucket, ok := l.buckets[group]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}

	r := bucket.Reserve()
	delay := r.Delay()
	if delay == 0 {
		return 0, nil
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < delay {
		r.Cancel()
		return 0, fmt.Errorf("%s needs %v: %w", group, delay, context.DeadlineExceeded)
	}

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		r.Cancel()
		return 0, ctx.Err()
	case <-t.C:
		return delay, nil
	}
}
