package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/barbercommunity/marketplace/internal/core/domain"
	"github.com/barbercommunity/marketplace/internal/core/ports"
)

func page(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

// Feed calls GET /api/posts.
func (c *Client) Feed(ctx context.Context, limit, offset int) (*ports.PostPage, error) {
	var res ports.PostPage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/posts", query: page(limit, offset)}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Barbers calls GET /api/barbers.
func (c *Client) Barbers(ctx context.Context, limit, offset int) (*ports.BarberPage, error) {
	var res ports.BarberPage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/barbers", query: page(limit, offset)}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchBarbers calls GET /api/barbers/search.
func (c *Client) SearchBarbers(ctx context.Context, city string, limit int) ([]domain.Barber, error) {
	q := url.Values{}
	q.Set("city", city)
	q.Set("limit", strconv.Itoa(limit))

	var res struct {
		Barbers []domain.Barber `json:"barbers"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/barbers/search", query: q}, &res); err != nil {
		return nil, err
	}
	return res.Barbers, nil
}

// Cities calls GET /api/barbers/cities/list.
func (c *Client) Cities(ctx context.Context) ([]string, error) {
	var res struct {
		Cities []string `json:"cities"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/barbers/cities/list"}, &res); err != nil {
		return nil, err
	}
	return res.Cities, nil
}

// BarberProfile calls GET /api/barbers/:id.
func (c *Client) BarberProfile(ctx context.Context, id domain.ID) (*domain.BarberProfile, error) {
	var res domain.BarberProfile
	path := "/api/barbers/" + url.PathEscape(string(id))
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Contact calls POST /api/contact.
func (c *Client) Contact(ctx context.Context, msg domain.ContactMessage) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/api/contact", body: msg}, nil)
}
