package api

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/42tr/venus/client/internal/types"
)

// Register creates an account. The backend answers with a token and the user.
func Register(ctx context.Context, rc *resty.Client, req types.RegisterRequest) (*types.AuthResponse, error) {
	const op = "register"
	r, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	resp, err := r.SetBody(req).Post("/auth/register")
	if err := finish(op, resp, err); err != nil {
		return nil, err
	}
	var out types.AuthResponse
	if err := decode(op, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token and the user.
func Login(ctx context.Context, rc *resty.Client, req types.LoginRequest) (*types.AuthResponse, error) {
	const op = "login"
	r, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	resp, err := r.SetBody(req).Post("/auth/login")
	if err := finish(op, resp, err); err != nil {
		return nil, err
	}
	var out types.AuthResponse
	if err := decode(op, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser returns the user the bearer token belongs to.
func CurrentUser(ctx context.Context, rc *resty.Client) (*types.User, error) {
	const op = "get current user"
	r, err := newRequest(ctx, rc)
	if err != nil {
		return nil, err
	}
	resp, err := r.Get("/auth/user")
	if err := finish(op, resp, err); err != nil {
		return nil, err
	}
	var u types.User
	if err := decode(op, resp, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
