package format

import (
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ist = time.FixedZone("IST", 5*60*60+30*60)

func TestDateAndTime(t *testing.T) {
	ts := time.Date(2025, time.January, 5, 18, 7, 0, 0, ist)

	assert.Equal(t, "2025-01-05", Date(ts))
	assert.Equal(t, "5 Jan 2025, 06:07 pm", DateTime(ts))
	assert.Equal(t, "06:07 pm", Time(ts))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "0h 45m", Duration(45))
	assert.Equal(t, "2h 0m", Duration(120))
	assert.Equal(t, "2h 15m", Duration(135))
}

func TestCountdown(t *testing.T) {
	assert.Equal(t, "15:00", Countdown(900))
	assert.Equal(t, "04:59", Countdown(299))
	assert.Equal(t, "00:00", Countdown(0))
	assert.Equal(t, "00:00", Countdown(-3))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "+12.5%", Percent(0.125))
	assert.Equal(t, "-5.0%", Percent(-0.05))
	assert.Equal(t, "0.0%", Percent(0))
}

func TestDateBounds(t *testing.T) {
	now := time.Date(2025, time.March, 1, 10, 0, 0, 0, ist)
	assert.Equal(t, "2025-03-01", MinDate(now))
	assert.Equal(t, "2026-03-01", MaxDate(now))
}

func TestRandomPNR(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, re, RandomPNR())
	}
}

func TestDebounce(t *testing.T) {
	var calls int32
	trigger, cancel := Debounce(func() { atomic.AddInt32(&calls, 1) }, 20*time.Millisecond)
	defer cancel()

	trigger()
	trigger()
	trigger()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDebounceCancel(t *testing.T) {
	var calls int32
	trigger, cancel := Debounce(func() { atomic.AddInt32(&calls, 1) }, 10*time.Millisecond)

	trigger()
	cancel()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
