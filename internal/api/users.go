package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/internal/ratelimit"
)

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var user models.User
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/users/register",
		group:  ratelimit.GroupUsers,
		body:   req,
	}, &user)
	return user, err
}

// Login exchanges credentials for a token and stores it. It is sent as a
// form and a rejection is reported as a RequestError, never as an expired
// session.
func (c *Client) Login(ctx context.Context, email, password string) (models.Token, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req := request{method: http.MethodPost, path: "/users/login", group: ratelimit.GroupUsers}
	resp, err := c.send(ctx, req, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", false)
	if err != nil {
		return models.Token{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Token{}, decodeError(resp, defaultLoginMessage)
	}

	var token models.Token
	if err := decodeBody(resp, &token, req); err != nil {
		return models.Token{}, err
	}
	if token.AccessToken == "" {
		return models.Token{}, NewRequestError(resp.StatusCode, defaultLoginMessage)
	}
	if err := c.session.SetToken(ctx, token.AccessToken); err != nil {
		return models.Token{}, fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/users/me",
		group:  ratelimit.GroupUsers,
	}, &user)
	return user, err
}
