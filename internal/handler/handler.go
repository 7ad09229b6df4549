package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightbooking/internal/account"
	"github.com/dharmasatrya/flightbooking/internal/api"
	"github.com/dharmasatrya/flightbooking/internal/booking"
	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/internal/payment"
	"github.com/dharmasatrya/flightbooking/internal/results"
	"github.com/dharmasatrya/flightbooking/internal/session"
	"github.com/dharmasatrya/flightbooking/internal/ui"
)

type Response struct {
	View          interface{}       `json:"view"`
	Notifications []ui.Notification `json:"notifications"`
	Navigate      *ui.Navigation    `json:"navigate,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// UIHandler serves one user's pages. Only one booking page and one payment
// page are active at a time.
type UIHandler struct {
	ctx      context.Context
	client   *api.Client
	session  *session.Session
	recorder *ui.Recorder
	sched    ui.Scheduler
	log      *zap.Logger

	account *account.Service
	results *results.Service

	paymentOpts []payment.Option

	mu      sync.Mutex
	booking *booking.Flow
	payment *payment.Flow
}

type Config struct {
	Client      *api.Client
	Session     *session.Session
	Recorder    *ui.Recorder
	Scheduler   ui.Scheduler
	Logger      *zap.Logger
	PaymentOpts []payment.Option
}

func NewUIHandler(ctx context.Context, cfg Config) *UIHandler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = ui.AfterFunc
	}
	return &UIHandler{
		ctx:         ctx,
		client:      cfg.Client,
		session:     cfg.Session,
		recorder:    cfg.Recorder,
		sched:       sched,
		log:         log.With(zap.String("component", "handler")),
		account:     account.NewService(cfg.Client, cfg.Session, cfg.Recorder, log),
		results:     results.NewService(cfg.Client, cfg.Session, cfg.Recorder, sched, log),
		paymentOpts: cfg.PaymentOpts,
	}
}

func (h *UIHandler) Register(e *echo.Echo) {
	g := e.Group("/ui")

	g.POST("/register", h.RegisterUser)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)

	g.GET("/search/options", h.SearchOptions)
	g.POST("/search", h.Search)
	g.GET("/results", h.Results)
	g.POST("/results/reset", h.ResetFilters)
	g.POST("/results/:id/select", h.SelectFlight)
	g.POST("/results/:id/book", h.BookFlight)
	g.GET("/flights/:id", h.FlightDetails)
	g.GET("/reference", h.Reference)
	g.GET("/external", h.ExternalSchedules)

	g.GET("/booking", h.LoadBooking)
	g.POST("/booking/passengers", h.AddPassenger)
	g.DELETE("/booking/passengers/:id", h.RemovePassenger)
	g.POST("/booking/submit", h.SubmitBooking)

	g.GET("/payment", h.LoadPayment)
	g.POST("/payment/submit", h.SubmitPayment)

	g.GET("/bookings", h.MyBookings)
	g.GET("/bookings/:pnr", h.GetBooking)
	g.DELETE("/bookings/:pnr", h.CancelBooking)

	e.GET("/health", HealthHandler)
}

func (h *UIHandler) Close() {
	h.mu.Lock()
	p := h.payment
	h.payment = nil
	h.mu.Unlock()

	if p != nil {
		p.Close()
	}
}

func (h *UIHandler) respond(c echo.Context, err error) error {
	frame := h.recorder.Drain()
	resp := Response{
		View:          frame.View,
		Notifications: frame.Notifications,
		Navigate:      frame.Navigate,
	}
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		resp.Error = err.Error()
		if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
			h.log.Error("ui request failed", zap.String("path", c.Path()), zap.Error(err))
		}
	}
	return c.JSON(status, resp)
}

func statusFor(err error) int {
	switch api.Kind(err) {
	case api.KindValidationFailed:
		return http.StatusBadRequest
	case api.KindSessionExpired:
		return http.StatusUnauthorized
	case api.KindRequestFailed:
		return http.StatusBadGateway
	}

	switch {
	case errors.Is(err, booking.ErrNotLoggedIn), errors.Is(err, payment.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, booking.ErrNotLoaded), errors.Is(err, payment.ErrNotLoaded),
		errors.Is(err, booking.ErrSubmitting), errors.Is(err, payment.ErrSubmitting),
		errors.Is(err, results.ErrNoResults):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func invalidInput(err error) error {
	return models.ValidationError("Invalid request: " + err.Error())
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
