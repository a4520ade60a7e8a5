package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Login exchanges a RUT and password for a token.
// Users without an assigned cargo are rejected with ErrNoRole.
func (c *Client) Login(ctx context.Context, rut, password string) (*LoginResponse, error) {
	if rut == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	var resp LoginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "auth/login/",
		body:   LoginRequest{Rut: rut, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Token == "" {
		return nil, errors.New("login response missing token")
	}
	if resp.Cargo == nil || *resp.Cargo <= 0 {
		return nil, ErrNoRole
	}

	return &resp, nil
}

// Logout revokes the current token on the backend.
func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "auth/logout/", struct{}{}, nil)
}

// RequestPasswordReset asks the backend to mail a recovery link for rut.
func (c *Client) RequestPasswordReset(ctx context.Context, rut string) (*Result, error) {
	var res Result
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "auth/solicitar-recuperacion/",
		body:   map[string]string{"rut": rut},
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to request password reset: %w", err)
	}
	return &res, nil
}

// ResetPassword sets a new password using a recovery token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*Result, error) {
	var res Result
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "auth/resetear-password/",
		body:   map[string]string{"token": token, "password": password},
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}
	return &res, nil
}

// SetPassword sets the first password of a newly registered user.
func (c *Client) SetPassword(ctx context.Context, token, password string) (*Result, error) {
	var res Result
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "establecer-password/",
		body:   map[string]string{"token": token, "password": password},
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to set password: %w", err)
	}
	return &res, nil
}
