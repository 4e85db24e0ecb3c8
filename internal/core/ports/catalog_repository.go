package ports

import (
	"context"

	"github.com/barbercommunity/marketplace/internal/core/domain"
)

// CatalogRepository serves the feed, the directory and contact messages.
type CatalogRepository interface {
	ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, int, error)
	ListBarbers(ctx context.Context, limit, offset int) ([]domain.Barber, int, error)
	SearchBarbers(ctx context.Context, city string, limit int) ([]domain.Barber, error)
	Cities(ctx context.Context) ([]string, error)
	FindBarber(ctx context.Context, id domain.ID) (*domain.BarberProfile, error)
	SaveContact(ctx context.Context, from domain.ID, msg domain.ContactMessage) error
}
