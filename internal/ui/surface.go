package ui

import (
	"net/url"
	"time"
)

type Page string

const (
	PageIndex         Page = "index.html"
	PageLogin         Page = "login.html"
	PageResults       Page = "results.html"
	PageFlightDetails Page = "flight-details.html"
	PageBooking       Page = "booking.html"
	PagePayment       Page = "payment.html"
	PageConfirmation  Page = "confirmation.html"
)

const (
	ErrorDismiss   = 5 * time.Second
	SuccessDismiss = 3 * time.Second
)

type Navigator interface {
	Navigate(page Page, query url.Values)
}

type Renderer interface {
	Render(view interface{})
}

// Notifier shows transient messages. Errors and successes have their own slot.
type Notifier interface {
	Error(msg string)
	Success(msg string)
}

type Surface interface {
	Navigator
	Renderer
	Notifier
}

type Scheduler func(d time.Duration, f func()) (cancel func())

func AfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

func Immediate(d time.Duration, f func()) func() {
	f()
	return func() {}
}

func NavigateAfter(sched Scheduler, nav Navigator, d time.Duration, page Page, query url.Values) func() {
	return sched(d, func() { nav.Navigate(page, query) })
}

func URL(page Page, query url.Values) string {
	if len(query) == 0 {
		return string(page)
	}
	return string(page) + "?" + query.Encode()
}
