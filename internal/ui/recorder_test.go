package ui

import (
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler fires callbacks only when told to.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*task
}

type task struct {
	d         time.Duration
	f         func()
	cancelled bool
}

func (m *manualScheduler) schedule(d time.Duration, f func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &task{d: d, f: f}
	m.tasks = append(m.tasks, t)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		t.cancelled = true
	}
}

func (m *manualScheduler) fireAll() {
	m.mu.Lock()
	tasks := m.tasks
	m.tasks = nil
	m.mu.Unlock()
	for _, t := range tasks {
		if !t.cancelled {
			t.f()
		}
	}
}

func TestRecorderNotificationsDismiss(t *testing.T) {
	sched := &manualScheduler{}
	r := NewRecorder(sched.schedule)

	r.Error("boom")
	r.Success("ok")
	require.Len(t, r.Active(), 2)
	assert.Equal(t, ErrorDismiss, sched.tasks[0].d)
	assert.Equal(t, SuccessDismiss, sched.tasks[1].d)

	sched.fireAll()
	assert.Empty(t, r.Active())
	assert.Len(t, r.Notifications(), 2)
}

func TestRecorderNewerMessageReplaces(t *testing.T) {
	sched := &manualScheduler{}
	r := NewRecorder(sched.schedule)

	r.Error("first")
	r.Error("second")

	require.Len(t, sched.tasks, 2)
	assert.True(t, sched.tasks[0].cancelled)

	active := r.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "second", active[0].Message)
}

func TestRecorderImmediateScheduler(t *testing.T) {
	r := NewRecorder(Immediate)
	r.Error("gone")

	assert.Empty(t, r.Active())
	assert.Equal(t, []Notification{{Kind: KindError, Message: "gone"}}, r.Notifications())
}

func TestRecorderSkipsUnchangedRender(t *testing.T) {
	r := NewRecorder(Immediate)

	r.Render(map[string]int{"a": 1})
	r.Render(map[string]int{"a": 1})
	assert.Equal(t, 1, r.Renders())

	r.Render(map[string]int{"a": 2})
	assert.Equal(t, 2, r.Renders())
}

func TestRecorderDrain(t *testing.T) {
	r := NewRecorder(Immediate)
	r.Render("view")
	r.Success("saved")
	r.Navigate(PageLogin, url.Values{"redirect": {"results.html"}})

	f := r.Drain()
	assert.Equal(t, "view", f.View)
	assert.Len(t, f.Notifications, 1)
	require.NotNil(t, f.Navigate)
	assert.Equal(t, "login.html?redirect=results.html", f.Navigate.URL)

	f = r.Drain()
	assert.Empty(t, f.Notifications)
	assert.Nil(t, f.Navigate)
	assert.Equal(t, "view", f.View)
}

func TestNavigateAfter(t *testing.T) {
	sched := &manualScheduler{}
	r := NewRecorder(sched.schedule)

	NavigateAfter(sched.schedule, r, 2*time.Second, PageIndex, nil)
	assert.Empty(t, r.Navigations())

	sched.fireAll()
	require.Len(t, r.Navigations(), 1)
	assert.Equal(t, "index.html", r.Navigations()[0].URL)
}
