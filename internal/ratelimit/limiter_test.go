package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupLimits(t *testing.T) {
	l := NewEndpointLimiter(Config{
		Default: Limit{RPS: 10, Burst: 20},
		Groups: map[string]Limit{
			GroupExternal: {RPS: 1, Burst: 2},
			GroupPricing:  {RPS: 4},
		},
	})

	tests := []struct {
		group string
		want  Limit
	}{
		{GroupUsers, Limit{RPS: 10, Burst: 20}},
		{GroupExternal, Limit{RPS: 1, Burst: 2}},
		{GroupPricing, Limit{RPS: 4, Burst: 20}},
	}
	for _, tt := range tests {
		got, ok := l.Limit(tt.group)
		require.True(t, ok, tt.group)
		assert.Equal(t, tt.want, got, tt.group)
	}

	_, ok := l.Limit("admin")
	assert.False(t, ok)
}

func TestDefaultConfigSlowsExternal(t *testing.T) {
	l := NewEndpointLimiterWithDefaults()
	ext, _ := l.Limit(GroupExternal)
	flights, _ := l.Limit(GroupFlights)
	assert.Less(t, ext.RPS, flights.RPS)
}

func TestZeroBurstStillSends(t *testing.T) {
	l := NewEndpointLimiter(Config{Default: Limit{RPS: 1}})
	got, _ := l.Limit(GroupUsers)
	assert.Equal(t, 1, got.Burst)

	waited, err := l.Wait(context.Background(), GroupUsers)
	require.NoError(t, err)
	assert.Zero(t, waited)
}

func TestWaitReportsDelay(t *testing.T) {
	l := NewEndpointLimiter(Config{Default: Limit{RPS: 50, Burst: 1}})
	ctx := context.Background()

	waited, err := l.Wait(ctx, GroupFlights)
	require.NoError(t, err)
	assert.Zero(t, waited)

	waited, err = l.Wait(ctx, GroupFlights)
	require.NoError(t, err)
	assert.Greater(t, waited, time.Duration(0))
	assert.LessOrEqual(t, waited, 40*time.Millisecond)
}

func TestGroupsAreIndependent(t *testing.T) {
	l := NewEndpointLimiter(Config{Default: Limit{RPS: 0.001, Burst: 1}})
	ctx := context.Background()

	for _, g := range Groups() {
		waited, err := l.Wait(ctx, g)
		require.NoError(t, err, g)
		assert.Zero(t, waited, g)
	}
}

func TestWaitFailsFastPastDeadline(t *testing.T) {
	l := NewEndpointLimiter(Config{Default: Limit{RPS: 0.001, Burst: 1}})
	_, err := l.Wait(context.Background(), GroupUsers)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	start := time.Now()
	_, err = l.Wait(ctx, GroupUsers)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWaitCancelled(t *testing.T) {
	l := NewEndpointLimiter(Config{Default: Limit{RPS: 0.001, Burst: 1}})
	_, err := l.Wait(context.Background(), GroupBookings)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)
	_, err = l.Wait(ctx, GroupBookings)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnknownGroup(t *testing.T) {
	_, err := NewEndpointLimiterWithDefaults().Wait(context.Background(), "admin")
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestNilLimiterNeverWaits(t *testing.T) {
	var l *EndpointLimiter
	waited, err := l.Wait(context.Background(), GroupUsers)
	assert.NoError(t, err)
	assert.Zero(t, waited)
}
