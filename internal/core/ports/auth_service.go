package ports

import (
	"context"

	"github.com/barbercommunity/marketplace/internal/core/domain"
)

// AuthService issues and resolves credentials on the API side.
type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Resolve(ctx context.Context, id domain.ID) (*domain.User, error)
}
