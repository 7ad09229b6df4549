package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightbooking/internal/account"
	"github.com/dharmasatrya/flightbooking/internal/models"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *UIHandler) RegisterUser(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return h.respond(c, invalidInput(err))
	}
	_, err := h.account.Register(c.Request().Context(), req)
	return h.respond(c, err)
}

func (h *UIHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.respond(c, invalidInput(err))
	}
	redirect := account.RedirectFrom(c.QueryParams())
	_, err := h.account.Login(c.Request().Context(), req.Email, req.Password, redirect)
	return h.respond(c, err)
}

func (h *UIHandler) Logout(c echo.Context) error {
	h.Close()
	return h.respond(c, h.account.Logout(c.Request().Context()))
}

func (h *UIHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	if !h.account.RequireAuth(ctx) {
		return h.respond(c, nil)
	}
	user, err := h.account.Profile(ctx)
	if err != nil {
		return h.respond(c, err)
	}
	h.recorder.Render(map[string]interface{}{
		"user":     user,
		"greeting": h.account.DisplayName(ctx),
	})
	return h.respond(c, nil)
}
