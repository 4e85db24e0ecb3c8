package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/barbercommunity/marketplace/internal/core/domain"
	"github.com/barbercommunity/marketplace/internal/core/ports"
)

// Login calls POST /api/auth/login.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*ports.AuthResult, error) {
	var res ports.AuthResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/login", body: req}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Register calls POST /api/auth/register.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*ports.AuthResult, error) {
	var res ports.AuthResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/register", body: reg}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

type meResponse struct {
	User *domain.User `json:"user"`
}

// Me calls GET /api/auth/me with credential attached, independent of the
// bound source.
func (c *Client) Me(ctx context.Context, credential string) (*domain.User, error) {
	if credential == "" {
		return nil, fmt.Errorf("me: %w", domain.ErrUnauthenticated)
	}
	var res meResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/auth/me", credential: credential}, &res); err != nil {
		return nil, err
	}
	if res.User == nil {
		return nil, fmt.Errorf("%w: me: missing user", domain.ErrMalformedResponse)
	}
	return res.User, nil
}
