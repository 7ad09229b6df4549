package format

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	dateTimeLayout = "2 Jan 2006, 03:04 pm"
	timeLayout     = "03:04 pm"
)

func Date(t time.Time) string {
	return t.Format(DateLayout)
}

func DateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

func Time(t time.Time) string {
	return t.Format(timeLayout)
}

func Duration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func Countdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func Percent(factor float64) string {
	sign := ""
	if factor > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, factor*100)
}

func MinDate(now time.Time) string {
	return Date(now)
}

func MaxDate(now time.Time) string {
	return Date(now.AddDate(1, 0, 0))
}

const (
	pnrLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	pnrDigits  = "0123456789"
)

func RandomPNR() string {
	b := make([]byte, 6)
	for i := 0; i < 3; i++ {
		b[i] = pnrLetters[rand.Intn(len(pnrLetters))]
	}
	for i := 3; i < 6; i++ {
		b[i] = pnrDigits[rand.Intn(len(pnrDigits))]
	}
	return string(b)
}

// Debounce delays fn until wait has passed without another trigger. The
// returned cancel drops any pending call.
func Debounce(fn func(), wait time.Duration) (trigger func(), cancel func()) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, fn)
	}

	cancel = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}

	return trigger, cancel
}
