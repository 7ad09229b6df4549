package ui

import (
	"net/url"
	"reflect"
	"sync"
	"time"
)

const (
	KindError   = "error"
	KindSuccess = "success"
)

type Notification struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Navigation struct {
	Page  Page       `json:"page"`
	Query url.Values `json:"query,omitempty"`
	URL   string     `json:"url"`
}

type Frame struct {
	View          interface{}    `json:"view"`
	Notifications []Notification `json:"notifications"`
	Navigate      *Navigation    `json:"navigate,omitempty"`
}

type slot struct {
	seq    int
	active *Notification
	cancel func()
}

// Recorder is an in-memory Surface. It keeps the current view, the active
// notification per kind and every navigation. Unchanged views are not
// re-rendered.
type Recorder struct {
	mu    sync.Mutex
	sched Scheduler

	view    interface{}
	renders int

	slots       map[string]*slot
	history     []Notification
	pending     []Notification
	navigations []Navigation
	lastNav     *Navigation
}

func NewRecorder(sched Scheduler) *Recorder {
	if sched == nil {
		sched = AfterFunc
	}
	return &Recorder{
		sched: sched,
		slots: map[string]*slot{KindError: {}, KindSuccess: {}},
	}
}

func (r *Recorder) Navigate(page Page, query url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nav := Navigation{Page: page, Query: query, URL: URL(page, query)}
	r.navigations = append(r.navigations, nav)
	r.lastNav = &nav
}

func (r *Recorder) Render(view interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.renders > 0 && reflect.DeepEqual(r.view, view) {
		return
	}
	r.view = view
	r.renders++
}

func (r *Recorder) Error(msg string) {
	r.notify(KindError, msg, ErrorDismiss)
}

func (r *Recorder) Success(msg string) {
	r.notify(KindSuccess, msg, SuccessDismiss)
}

func (r *Recorder) notify(kind, msg string, after time.Duration) {
	n := Notification{Kind: kind, Message: msg}

	r.mu.Lock()
	s := r.slots[kind]
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	seq := s.seq
	s.active = &n
	r.history = append(r.history, n)
	r.pending = append(r.pending, n)
	r.mu.Unlock()

	cancel := r.sched(after, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if s.seq == seq {
			s.active = nil
		}
	})

	r.mu.Lock()
	if s.seq == seq && s.active != nil {
		s.cancel = cancel
	}
	r.mu.Unlock()
}

func (r *Recorder) View() interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

func (r *Recorder) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

func (r *Recorder) Active() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Notification
	for _, kind := range []string{KindError, KindSuccess} {
		if n := r.slots[kind].active; n != nil {
			out = append(out, *n)
		}
	}
	return out
}

func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.history...)
}

func (r *Recorder) Navigations() []Navigation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Navigation(nil), r.navigations...)
}

// Drain returns the current view with the messages and the latest navigation
// recorded since the previous Drain.
func (r *Recorder) Drain() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := Frame{
		View:          r.view,
		Notifications: r.pending,
		Navigate:      r.lastNav,
	}
	if f.Notifications == nil {
		f.Notifications = []Notification{}
	}
	r.pending = nil
	r.lastNav = nil
	return f
}
