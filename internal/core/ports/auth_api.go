package ports

import (
	"context"
	"fmt"

	"github.com/barbercommunity/marketplace/internal/core/domain"
)

// AuthResult is the success body of login and registration.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// AuthAPI is the remote identity contract consumed by the session manager.
type AuthAPI interface {
	Login(ctx context.Context, req domain.LoginRequest) (*AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (*AuthResult, error)
	// Me resolves the user owning credential. The credential is passed
	// explicitly so a verification is bound to the value it checks.
	Me(ctx context.Context, credential string) (*domain.User, error)
}

// APIError is a non-2xx answer from the REST API. Message holds the
// server-provided explanation when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}
