package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/barbercommunity/marketplace/internal/core/domain"
	"github.com/barbercommunity/marketplace/internal/core/ports"
	"github.com/barbercommunity/marketplace/internal/pkg/validate"
)

const (
	defaultFeedLimit   = 10
	defaultBarberLimit = 12
	defaultSearchLimit = 20
)

// SessionReader is the read-only view of the session that page-level code
// is allowed to depend on.
type SessionReader interface {
	Snapshot() domain.Session
}

// MarketplaceService fronts the catalog endpoints and applies the role gates
// the pages enforce before posting anything.
type MarketplaceService struct {
	api       ports.MarketplaceAPI
	session   SessionReader
	validator *validate.Validator
	log       zerolog.Logger
}

func NewMarketplaceService(api ports.MarketplaceAPI, session SessionReader, log zerolog.Logger) *MarketplaceService {
	return &MarketplaceService{api: api, session: session, validator: validate.New(), log: log}
}

func (s *MarketplaceService) Feed(ctx context.Context, limit, offset int) (*ports.PostPage, error) {
	page, err := s.api.Feed(ctx, orDefault(limit, defaultFeedLimit), max(offset, 0))
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	return page, nil
}

func (s *MarketplaceService) Barbers(ctx context.Context, limit, offset int) (*ports.BarberPage, error) {
	page, err := s.api.Barbers(ctx, orDefault(limit, defaultBarberLimit), max(offset, 0))
	if err != nil {
		return nil, fmt.Errorf("barbers: %w", err)
	}
	return page, nil
}

func (s *MarketplaceService) SearchBarbers(ctx context.Context, city string, limit int) ([]domain.Barber, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("search barbers: city is required")
	}
	barbers, err := s.api.SearchBarbers(ctx, city, orDefault(limit, defaultSearchLimit))
	if err != nil {
		return nil, fmt.Errorf("search barbers: %w", err)
	}
	return barbers, nil
}

func (s *MarketplaceService) Cities(ctx context.Context) ([]string, error) {
	cities, err := s.api.Cities(ctx)
	if err != nil {
		return nil, fmt.Errorf("cities: %w", err)
	}
	return cities, nil
}

func (s *MarketplaceService) BarberProfile(ctx context.Context, id domain.ID) (*domain.BarberProfile, error) {
	profile, err := s.api.BarberProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("barber profile: %w", err)
	}
	return profile, nil
}

// Contact sends a message to a provider. Only an authenticated client may
// do so; the gate is checked before any request is made.
func (s *MarketplaceService) Contact(ctx context.Context, msg domain.ContactMessage) error {
	snap := s.session.Snapshot()
	if !snap.IsAuthenticated() {
		return fmt.Errorf("contact: %w", domain.ErrUnauthenticated)
	}
	if !snap.CanContact() {
		return fmt.Errorf("contact: %w", domain.ErrForbidden)
	}

	msg.Message = strings.TrimSpace(msg.Message)
	msg.Email = strings.TrimSpace(msg.Email)
	if err := s.validator.Struct(msg); err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	if err := s.api.Contact(ctx, msg); err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	s.log.Info().Str("barber_id", string(msg.BarberID)).Msg("contact message sent")
	return nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
