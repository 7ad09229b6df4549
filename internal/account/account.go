package account

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/internal/session"
	"github.com/dharmasatrya/flightbooking/internal/ui"
	"github.com/dharmasatrya/flightbooking/pkg/validate"
)

const (
	msgRegistered    = "Registration successful! Please login."
	msgLoggedIn      = "Login successful!"
	msgMissingLogin  = "Please enter email and password"
	msgInvalidSignup = "Please check the registration details"
	msgSaveUser      = "Login succeeded but your profile could not be saved"
	msgSaveProfile   = "Your profile could not be saved"
	msgLogoutFailed  = "Logout failed"
)

type API interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, email, password string) (models.Token, error)
	Profile(ctx context.Context) (models.User, error)
}

type Service struct {
	api     API
	session *session.Session
	surface ui.Surface
	log     *zap.Logger
}

func NewService(api API, sess *session.Session, surface ui.Surface, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		api:     api,
		session: sess,
		surface: surface,
		log:     log.With(zap.String("component", "account")),
	}
}

func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if errs := validate.Struct(req); len(errs) > 0 {
		s.surface.Error(msgInvalidSignup + ": " + validate.Format(errs))
		return models.User{}, models.ValidationError(validate.Format(errs))
	}

	user, err := s.api.Register(ctx, req)
	if err != nil {
		s.surface.Error(err.Error())
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	s.log.Info("user registered", zap.Int64("user_id", user.ID))
	s.surface.Success(msgRegistered)
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string, redirect ui.Page) (models.User, error) {
	if email == "" || password == "" {
		s.surface.Error(msgMissingLogin)
		return models.User{}, models.ValidationError(msgMissingLogin)
	}

	if _, err := s.api.Login(ctx, email, password); err != nil {
		s.surface.Error(err.Error())
		return models.User{}, fmt.Errorf("login: %w", err)
	}

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.surface.Error(err.Error())
		return models.User{}, fmt.Errorf("fetch profile: %w", err)
	}
	if err := s.session.SetUser(ctx, user); err != nil {
		s.log.Error("failed to store user", zap.Error(err))
		s.surface.Error(msgSaveUser)
		return models.User{}, fmt.Errorf("store user: %w", err)
	}

	s.log.Info("user logged in", zap.Int64("user_id", user.ID))
	s.surface.Success(msgLoggedIn)

	if redirect == "" {
		redirect = ui.PageIndex
	}
	s.surface.Navigate(redirect, nil)
	return user, nil
}

func (s *Service) Profile(ctx context.Context) (models.User, error) {
	user, err := s.api.Profile(ctx)
	if err != nil {
		s.surface.Error(err.Error())
		return models.User{}, fmt.Errorf("fetch profile: %w", err)
	}
	if err := s.session.SetUser(ctx, user); err != nil {
		s.log.Error("failed to store user", zap.Error(err))
		s.surface.Error(msgSaveProfile)
		return models.User{}, fmt.Errorf("store user: %w", err)
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		s.surface.Error(msgLogoutFailed)
		return fmt.Errorf("logout: %w", err)
	}
	s.surface.Navigate(ui.PageIndex, nil)
	return nil
}

func (s *Service) RequireAuth(ctx context.Context) bool {
	return RequireAuth(ctx, s.session, s.surface)
}

func RequireAuth(ctx context.Context, sess *session.Session, nav ui.Navigator) bool {
	if sess.IsLoggedIn(ctx) {
		return true
	}
	nav.Navigate(ui.PageLogin, nil)
	return false
}

// RedirectFrom reads a ?redirect= target, ignoring anything that is not a
// known page.
func RedirectFrom(q url.Values) ui.Page {
	switch p := ui.Page(q.Get("redirect")); p {
	case ui.PageIndex, ui.PageResults, ui.PageFlightDetails, ui.PageBooking, ui.PagePayment, ui.PageConfirmation:
		return p
	}
	return ""
}

func (s *Service) DisplayName(ctx context.Context) string {
	user, ok, err := s.session.User(ctx)
	if err != nil || !ok || user.FirstName == "" {
		return ""
	}
	return "Hi, " + user.FirstName
}
