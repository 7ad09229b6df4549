package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dharmasatrya/flightbooking/internal/account"
	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/internal/session"
	"github.com/dharmasatrya/flightbooking/internal/ui"
	"github.com/dharmasatrya/flightbooking/internal/view"
	"github.com/dharmasatrya/flightbooking/pkg/currency"
	"github.com/dharmasatrya/flightbooking/pkg/format"
)

const ReservationWindow = 15 * time.Minute

const (
	urgentBelow = 5 * time.Minute

	noBookingRedirectDelay    = 2 * time.Second
	expiredRedirectDelay      = 3 * time.Second
	confirmationRedirectDelay = 1500 * time.Millisecond

	DefaultProcessingDelay = 2 * time.Second

	msgPaid    = "Payment successful!"
	msgExpired = "Booking expired. Please try again."
)

type State string

const (
	StatePending   State = "pending"
	StateConfirmed State = "confirmed"
	StateExpired   State = "expired"
)

const (
	MethodUPI        = "upi"
	MethodCreditCard = "credit_card"
	MethodNetbanking = "netbanking"
	MethodWallet     = "wallet"
)

const (
	ErrNoBooking      models.ValidationError = "No booking found"
	ErrUPIMissing     models.ValidationError = "Please enter UPI ID"
	ErrCardIncomplete models.ValidationError = "Please fill all card details"
	ErrBankMissing    models.ValidationError = "Please select a bank"
	ErrWalletMissing  models.ValidationError = "Please select a wallet"
	ErrUnknownMethod  models.ValidationError = "Please select a payment method"
	ErrExpired        models.ValidationError = msgExpired
	ErrAlreadyPaid    models.ValidationError = "Booking is already confirmed"
)

var (
	ErrNotLoggedIn = errors.New("payment: not logged in")
	ErrNotLoaded   = errors.New("payment: flow not loaded")
	ErrSubmitting  = errors.New("payment: payment already in progress")
)

type API interface {
	ConfirmBooking(ctx context.Context, pnr, paymentMethod string) (models.Confirmation, error)
}

type Details struct {
	Method     string `json:"method"`
	UPIID      string `json:"upi_id"`
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVV    string `json:"card_cvv"`
	CardName   string `json:"card_name"`
	Bank       string `json:"bank"`
	Wallet     string `json:"wallet"`
}

func (d Details) Validate() error {
	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	switch d.Method {
	case MethodUPI:
		if blank(d.UPIID) {
			return ErrUPIMissing
		}
	case MethodCreditCard:
		if blank(d.CardNumber) || blank(d.CardExpiry) || blank(d.CardCVV) || blank(d.CardName) {
			return ErrCardIncomplete
		}
	case MethodNetbanking:
		if blank(d.Bank) {
			return ErrBankMissing
		}
	case MethodWallet:
		if blank(d.Wallet) {
			return ErrWalletMissing
		}
	default:
		return ErrUnknownMethod
	}
	return nil
}

type Option func(*Flow)

func WithProcessingDelay(d time.Duration) Option {
	return func(f *Flow) { f.processingDelay = d }
}

func WithTickInterval(d time.Duration) Option {
	return func(f *Flow) { f.tickInterval = d }
}

// Flow is the payment page: one pending booking, a countdown and the
// confirm call. State moves Pending to Confirmed or Expired and never back.
type Flow struct {
	api     API
	session *session.Session
	surface ui.Surface
	sched   ui.Scheduler
	log     *zap.Logger

	processingDelay time.Duration
	tickInterval    time.Duration

	mu         sync.Mutex
	loaded     bool
	state      State
	remaining  int
	booking    models.Booking
	submitting bool
	stopTimer  context.CancelFunc
	timerDone  chan struct{}
}

func New(api API, sess *session.Session, surface ui.Surface, sched ui.Scheduler, log *zap.Logger, opts ...Option) *Flow {
	if sched == nil {
		sched = ui.AfterFunc
	}
	if log == nil {
		log = zap.NewNop()
	}
	f := &Flow{
		api:             api,
		session:         sess,
		surface:         surface,
		sched:           sched,
		log:             log.With(zap.String("component", "payment")),
		processingDelay: DefaultProcessingDelay,
		tickInterval:    time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load shows the pending booking and starts the countdown. The countdown
// lives until ctx is done, the flow settles or Close is called. Loading a
// flow whose countdown is already running only re-renders.
func (f *Flow) Load(ctx context.Context) error {
	if !account.RequireAuth(ctx, f.session, f.surface) {
		return ErrNotLoggedIn
	}

	f.mu.Lock()
	running := f.stopTimer != nil
	f.mu.Unlock()
	if running {
		f.render()
		return nil
	}

	booking, ok, err := f.session.BookingData(ctx)
	if err != nil {
		f.log.Error("failed to read booking data", zap.Error(err))
	}
	if !ok || err != nil {
		f.surface.Error(string(ErrNoBooking))
		ui.NavigateAfter(f.sched, f.surface, noBookingRedirectDelay, ui.PageIndex, nil)
		return ErrNoBooking
	}

	f.mu.Lock()
	f.loaded = true
	f.state = StatePending
	f.remaining = int(ReservationWindow / time.Second)
	f.booking = booking
	f.submitting = false
	f.mu.Unlock()

	f.render()
	f.start(ctx)

	f.log.Info("payment started", zap.String("pnr", booking.PNR))
	return nil
}

func (f *Flow) start(ctx context.Context) {
	tctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	f.mu.Lock()
	f.stopTimer = cancel
	f.timerDone = done
	f.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(f.tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-tctx.Done():
				return
			case <-ticker.C:
				if !f.Tick() {
					return
				}
			}
		}
	}()
}

func (f *Flow) stopLocked() {
	if f.stopTimer != nil {
		f.stopTimer()
		f.stopTimer = nil
	}
}

// Tick advances the countdown by one second and reports whether it is
// still running. Reaching zero expires the booking exactly once.
func (f *Flow) Tick() bool {
	f.mu.Lock()
	if f.state != StatePending {
		f.mu.Unlock()
		return false
	}

	f.remaining--
	if f.remaining > 0 {
		f.mu.Unlock()
		f.render()
		return true
	}

	f.remaining = 0
	f.state = StateExpired
	f.stopLocked()
	pnr := f.booking.PNR
	f.mu.Unlock()

	f.log.Info("booking expired", zap.String("pnr", pnr))
	f.render()
	f.surface.Error(msgExpired)
	ui.NavigateAfter(f.sched, f.surface, expiredRedirectDelay, ui.PageIndex, nil)
	return false
}

func (f *Flow) Submit(ctx context.Context, d Details) (models.Confirmation, error) {
	if err := f.begin(); err != nil {
		if ve, ok := err.(models.ValidationError); ok {
			f.surface.Error(string(ve))
		}
		return models.Confirmation{}, err
	}
	defer f.end()

	if err := d.Validate(); err != nil {
		f.surface.Error(err.Error())
		return models.Confirmation{}, err
	}

	if f.processingDelay > 0 {
		t := time.NewTimer(f.processingDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return models.Confirmation{}, ctx.Err()
		case <-t.C:
		}
	}

	f.mu.Lock()
	state := f.state
	pnr := f.booking.PNR
	f.mu.Unlock()
	if state != StatePending {
		return models.Confirmation{}, ErrExpired
	}

	conf, err := f.api.ConfirmBooking(ctx, pnr, d.Method)
	if err != nil {
		f.log.Warn("confirm booking failed", zap.String("pnr", pnr), zap.Error(err))
		f.surface.Error(err.Error())
		return models.Confirmation{}, fmt.Errorf("confirm booking: %w", err)
	}

	f.mu.Lock()
	if f.state != StatePending {
		f.mu.Unlock()
		f.log.Warn("confirmation arrived after expiry", zap.String("pnr", pnr))
		return conf, nil
	}
	f.state = StateConfirmed
	f.stopLocked()
	if conf.Status != "" {
		f.booking.Status = conf.Status
	}
	if conf.PaymentStatus != "" {
		f.booking.PaymentStatus = conf.PaymentStatus
	}
	if conf.TotalAmount > 0 {
		f.booking.TotalPrice = conf.TotalAmount
	}
	booking := f.booking
	f.mu.Unlock()

	if err := f.session.SetBookingData(ctx, booking); err != nil {
		f.log.Error("failed to store confirmed booking", zap.Error(err))
	}

	f.log.Info("payment confirmed", zap.String("pnr", pnr), zap.String("method", d.Method))
	f.render()
	f.surface.Success(msgPaid)
	ui.NavigateAfter(f.sched, f.surface, confirmationRedirectDelay, ui.PageConfirmation, nil)
	return conf, nil
}

func (f *Flow) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.loaded {
		return ErrNotLoaded
	}
	switch f.state {
	case StateExpired:
		return ErrExpired
	case StateConfirmed:
		return ErrAlreadyPaid
	}
	if f.submitting {
		return ErrSubmitting
	}
	f.submitting = true
	return nil
}

func (f *Flow) end() {
	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()
}

// Close stops the countdown and waits for it to exit. It is safe to call
// more than once.
func (f *Flow) Close() {
	f.mu.Lock()
	f.stopLocked()
	done := f.timerDone
	f.timerDone = nil
	f.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Remaining() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return time.Duration(f.remaining) * time.Second
}

func (f *Flow) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopTimer != nil
}

func (f *Flow) View() view.PaymentView {
	f.mu.Lock()
	defer f.mu.Unlock()

	return view.PaymentView{
		Booking: view.NewBookingSummary(f.booking),
		Amount:  currency.FormatINR(f.booking.TotalPrice),
		Timer:   format.Countdown(f.remaining),
		Urgent:  time.Duration(f.remaining)*time.Second < urgentBelow,
		State:   string(f.state),
	}
}

func (f *Flow) render() {
	f.surface.Render(f.View())
}
