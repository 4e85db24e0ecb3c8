package ports

import (
	"context"

	"github.com/barbercommunity/marketplace/internal/core/domain"
)

// PostPage is one page of the feed.
type PostPage struct {
	Posts      []domain.Post     `json:"posts"`
	Pagination domain.Pagination `json:"pagination"`
}

// BarberPage is one page of the provider directory.
type BarberPage struct {
	Barbers    []domain.Barber   `json:"barbers"`
	Pagination domain.Pagination `json:"pagination"`
}

// MarketplaceAPI covers the display-and-post endpoints outside the session core.
type MarketplaceAPI interface {
	Feed(ctx context.Context, limit, offset int) (*PostPage, error)
	Barbers(ctx context.Context, limit, offset int) (*BarberPage, error)
	SearchBarbers(ctx context.Context, city string, limit int) ([]domain.Barber, error)
	Cities(ctx context.Context) ([]string, error)
	BarberProfile(ctx context.Context, id domain.ID) (*domain.BarberProfile, error)
	Contact(ctx context.Context, msg domain.ContactMessage) error
}
