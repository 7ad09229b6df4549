package booking

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
	"github.com/dharmasatrya/flightbooking/pkg/format"
	"github.com/dharmasatrya/flightbooking/pkg/validate"
)

const TaxRate = 0.05

const (
	noFlightRedirectDelay = 2 * time.Second
	paymentRedirectDelay  = 1 * time.Second
	msgCreated            = "Booking created successfully!"
)

const (
	ErrNoFlight         models.ValidationError = "No flight selected"
	ErrMaxPassengers    models.ValidationError = "Maximum 9 passengers allowed"
	ErrMinPassengers    models.ValidationError = "At least one passenger required"
	ErrTerms            models.ValidationError = "Please accept the terms and conditions"
	ErrContactEmail     models.ValidationError = "Invalid contact email"
	ErrContactPhone     models.ValidationError = "Invalid contact phone number"
	ErrPassengerMissing models.ValidationError = "passenger form not found"
	ErrPassengerCount   models.ValidationError = "passenger list does not match the forms"
)

var (
	ErrNotLoggedIn = errors.New("booking: not logged in")
	ErrNotLoaded   = errors.New("booking: flow not loaded")
	ErrSubmitting  = errors.New("booking: submission already in progress")
)

type API interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (models.Booking, error)
}

// Form is one passenger form. IDs are stable across removals; the
// display label follows the position.
type Form struct {
	ID        int
	Passenger models.Passenger
}

type Fares struct {
	Passengers int
	TotalBase  float64
	Discount   float64
	Taxes      float64
	Total      float64
}

func CalculateFares(f models.Flight, n int) Fares {
	totalBase := f.DynamicPrice * float64(n)
	taxes := totalBase * TaxRate
	return Fares{
		Passengers: n,
		TotalBase:  totalBase,
		Discount:   (f.BasePrice - f.DynamicPrice) * float64(n),
		Taxes:      taxes,
		Total:      totalBase + taxes,
	}
}

type Flow struct {
	api     API
	session *session.Session
	surface ui.Surface
	sched   ui.Scheduler
	log     *zap.Logger

	mu         sync.Mutex
	loaded     bool
	flight     models.Flight
	criteria   models.SearchRequest
	forms      []Form
	nextID     int
	contact    view.Contact
	submitting bool
}

func New(api API, sess *session.Session, surface ui.Surface, sched ui.Scheduler, log *zap.Logger) *Flow {
	if sched == nil {
		sched = ui.AfterFunc
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Flow{
		api:     api,
		session: sess,
		surface: surface,
		sched:   sched,
		log:     log.With(zap.String("component", "booking")),
	}
}

func (f *Flow) Load(ctx context.Context) error {
	if !account.RequireAuth(ctx, f.session, f.surface) {
		return ErrNotLoggedIn
	}

	flight, okFlight, err := f.session.SelectedFlight(ctx)
	if err != nil {
		f.log.Error("failed to read selected flight", zap.Error(err))
	}
	params, okParams, err2 := f.session.SearchParams(ctx)
	if err2 != nil {
		f.log.Error("failed to read search params", zap.Error(err2))
	}
	if !okFlight || !okParams || err != nil || err2 != nil {
		f.surface.Error(string(ErrNoFlight))
		ui.NavigateAfter(f.sched, f.surface, noFlightRedirectDelay, ui.PageIndex, nil)
		return ErrNoFlight
	}

	n := params.Passengers
	if n < models.MinPassengers {
		n = models.MinPassengers
	}
	if n > models.MaxPassengers {
		n = models.MaxPassengers
	}

	f.mu.Lock()
	f.loaded = true
	f.flight = flight
	f.criteria = params
	f.forms = nil
	f.nextID = 0
	f.submitting = false
	for i := 0; i < n; i++ {
		f.appendForm()
	}
	f.mu.Unlock()

	f.PrefillContact(ctx)
	f.render()
	return nil
}

func (f *Flow) appendForm() {
	f.forms = append(f.forms, Form{
		ID:        f.nextID,
		Passenger: models.Passenger{Nationality: models.DefaultNationality},
	})
	f.nextID++
}

func (f *Flow) PrefillContact(ctx context.Context) {
	user, ok, err := f.session.User(ctx)
	if err != nil || !ok {
		return
	}
	f.mu.Lock()
	f.contact = view.Contact{Email: user.Email, Phone: user.Phone}
	f.mu.Unlock()
}

func (f *Flow) AddPassenger() error {
	f.mu.Lock()
	if !f.loaded {
		f.mu.Unlock()
		return ErrNotLoaded
	}
	if len(f.forms) >= models.MaxPassengers {
		f.mu.Unlock()
		f.surface.Error(string(ErrMaxPassengers))
		return ErrMaxPassengers
	}
	f.appendForm()
	f.mu.Unlock()

	f.render()
	return nil
}

// RemovePassenger drops the form with id. The first form stays.
func (f *Flow) RemovePassenger(id int) error {
	f.mu.Lock()
	if !f.loaded {
		f.mu.Unlock()
		return ErrNotLoaded
	}
	if len(f.forms) <= models.MinPassengers {
		f.mu.Unlock()
		f.surface.Error(string(ErrMinPassengers))
		return ErrMinPassengers
	}

	idx := f.indexOf(id)
	if idx <= 0 {
		f.mu.Unlock()
		return ErrPassengerMissing
	}
	f.forms = append(f.forms[:idx], f.forms[idx+1:]...)
	f.mu.Unlock()

	f.render()
	return nil
}

func (f *Flow) indexOf(id int) int {
	for i, form := range f.forms {
		if form.ID == id {
			return i
		}
	}
	return -1
}

func (f *Flow) UpdatePassenger(id int, p models.Passenger) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.indexOf(id)
	if idx < 0 {
		return ErrPassengerMissing
	}
	f.forms[idx].Passenger = p
	return nil
}

func (f *Flow) SetPassengers(ps []models.Passenger) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(ps) != len(f.forms) {
		return ErrPassengerCount
	}
	for i := range ps {
		f.forms[i].Passenger = ps[i]
	}
	return nil
}

func (f *Flow) Forms() []Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Form(nil), f.forms...)
}

func (f *Flow) Fares() Fares {
	f.mu.Lock()
	defer f.mu.Unlock()
	return CalculateFares(f.flight, len(f.forms))
}

func (f *Flow) CollectPassengers() ([]models.Passenger, error) {
	f.mu.Lock()
	forms := append([]Form(nil), f.forms...)
	f.mu.Unlock()

	out := make([]models.Passenger, 0, len(forms))
	for i, form := range forms {
		p := clean(form.Passenger)
		if err := checkPassenger(p, i+1); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func clean(p models.Passenger) models.Passenger {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.DateOfBirth = strings.TrimSpace(p.DateOfBirth)
	p.Gender = strings.TrimSpace(p.Gender)
	p.Nationality = strings.TrimSpace(p.Nationality)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	if p.PassportNumber != nil {
		passport := strings.TrimSpace(*p.PassportNumber)
		if passport == "" {
			p.PassportNumber = nil
		} else {
			p.PassportNumber = &passport
		}
	}
	return p
}

func checkPassenger(p models.Passenger, position int) error {
	errs := validate.Struct(p)
	switch {
	case len(errs) == 0:
		return nil
	case validate.HasTag(errs, "required"):
		return models.ValidationError(fmt.Sprintf("Please fill all required fields for Passenger %d", position))
	case validate.HasTag(errs, "pnemail"):
		return models.ValidationError(fmt.Sprintf("Invalid email for Passenger %d", position))
	case validate.HasTag(errs, "pnphone"):
		return models.ValidationError(fmt.Sprintf("Invalid phone number for Passenger %d", position))
	}
	return models.ValidationError(validate.Format(errs))
}

// Submit validates terms, passengers and contact, in that order, and only
// then creates the booking.
func (f *Flow) Submit(ctx context.Context, contact view.Contact, termsAccepted bool) (models.Booking, error) {
	f.mu.Lock()
	if !f.loaded {
		f.mu.Unlock()
		return models.Booking{}, ErrNotLoaded
	}
	if f.submitting {
		f.mu.Unlock()
		return models.Booking{}, ErrSubmitting
	}
	f.submitting = true
	f.contact = contact
	flight := f.flight
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	req, err := f.prepare(flight, contact, termsAccepted)
	if err != nil {
		f.surface.Error(err.Error())
		return models.Booking{}, err
	}

	booking, err := f.api.CreateBooking(ctx, req)
	if err != nil {
		f.log.Warn("create booking failed", zap.Int64("flight_id", flight.ID), zap.Error(err))
		f.surface.Error(err.Error())
		return models.Booking{}, fmt.Errorf("create booking: %w", err)
	}

	if err := f.session.SetBookingData(ctx, booking); err != nil {
		f.surface.Error(err.Error())
		return models.Booking{}, fmt.Errorf("store booking: %w", err)
	}

	f.log.Info("booking created",
		zap.String("pnr", booking.PNR),
		zap.Int64("flight_id", flight.ID),
		zap.Int("passengers", len(req.Passengers)),
	)
	f.surface.Success(msgCreated)
	ui.NavigateAfter(f.sched, f.surface, paymentRedirectDelay, ui.PagePayment, nil)
	return booking, nil
}

func (f *Flow) prepare(flight models.Flight, contact view.Contact, termsAccepted bool) (models.BookingRequest, error) {
	if !termsAccepted {
		return models.BookingRequest{}, ErrTerms
	}

	passengers, err := f.CollectPassengers()
	if err != nil {
		return models.BookingRequest{}, err
	}

	if !validate.Email(strings.TrimSpace(contact.Email)) {
		return models.BookingRequest{}, ErrContactEmail
	}
	if !validate.Phone(strings.TrimSpace(contact.Phone)) {
		return models.BookingRequest{}, ErrContactPhone
	}

	return models.BookingRequest{
		FlightID:   flight.ID,
		SeatClass:  flight.SeatClass,
		Passengers: passengers,
	}, nil
}

func (f *Flow) View() view.BookingView {
	f.mu.Lock()
	defer f.mu.Unlock()

	fares := CalculateFares(f.flight, len(f.forms))
	v := view.BookingView{
		Flight:     view.NewFlightSummary(f.flight),
		Passengers: make([]view.PassengerForm, 0, len(f.forms)),
		CanAdd:     len(f.forms) < models.MaxPassengers,
		Fares:      view.NewFareSummary(fares.Passengers, fares.TotalBase, fares.Discount, fares.Taxes, fares.Total, f.flight.PriceBreakdown),
		Contact:    f.contact,
		MaxDOB:     format.Date(time.Now()),
		Submitting: f.submitting,
	}
	for i, form := range f.forms {
		v.Passengers = append(v.Passengers, view.PassengerForm{
			ID:        form.ID,
			Label:     fmt.Sprintf("Passenger %d", i+1),
			Removable: i > 0,
			Passenger: form.Passenger,
		})
	}
	return v
}

func (f *Flow) render() {
	f.surface.Render(f.View())
}
