package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/barbercommunity/marketplace/internal/core/domain"
)

type contactRecord struct {
	ID      string
	From    domain.ID
	Message domain.ContactMessage
	At      time.Time
}

// Catalog serves posts and the provider directory from memory. Posts are
// kept newest first.
type Catalog struct {
	mu       sync.RWMutex
	barbers  []domain.Barber
	posts    []domain.Post
	contacts []contactRecord
}

// NewCatalog returns a catalog holding the given barbers and posts.
func NewCatalog(barbers []domain.Barber, posts []domain.Post) *Catalog {
	c := &Catalog{
		barbers: append([]domain.Barber(nil), barbers...),
		posts:   append([]domain.Post(nil), posts...),
	}
	sort.SliceStable(c.posts, func(i, j int) bool { return c.posts[i].CreatedAt.After(c.posts[j].CreatedAt) })
	return c
}

func window(total, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return offset, end
}

func (c *Catalog) ListPosts(_ context.Context, limit, offset int) ([]domain.Post, int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	from, to := window(len(c.posts), limit, offset)
	return append([]domain.Post(nil), c.posts[from:to]...), len(c.posts), nil
}

func (c *Catalog) ListBarbers(_ context.Context, limit, offset int) ([]domain.Barber, int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	from, to := window(len(c.barbers), limit, offset)
	return append([]domain.Barber(nil), c.barbers[from:to]...), len(c.barbers), nil
}

// SearchBarbers matches city case-insensitively as a substring of location.
func (c *Catalog) SearchBarbers(_ context.Context, city string, limit int) ([]domain.Barber, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(city))
	out := make([]domain.Barber, 0)
	for _, b := range c.barbers {
		if strings.Contains(strings.ToLower(b.Location), needle) {
			out = append(out, b)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// Cities returns the distinct provider locations, sorted.
func (c *Catalog) Cities(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, b := range c.barbers {
		if b.Location == "" {
			continue
		}
		if _, ok := seen[b.Location]; ok {
			continue
		}
		seen[b.Location] = struct{}{}
		out = append(out, b.Location)
	}
	sort.Strings(out)
	return out, nil
}

func (c *Catalog) FindBarber(_ context.Context, id domain.ID) (*domain.BarberProfile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, b := range c.barbers {
		if b.ID != id {
			continue
		}
		profile := &domain.BarberProfile{Barber: b, Posts: make([]domain.Post, 0)}
		for _, p := range c.posts {
			if p.UserID == id {
				profile.Posts = append(profile.Posts, p)
			}
		}
		for _, m := range c.contacts {
			if m.Message.BarberID == id {
				profile.Stats.TotalContacts++
			}
		}
		profile.Stats.TotalPosts = len(profile.Posts)
		return profile, nil
	}
	return nil, domain.ErrBarberNotFound
}

func (c *Catalog) SaveContact(_ context.Context, from domain.ID, msg domain.ContactMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	found := false
	for _, b := range c.barbers {
		if b.ID == msg.BarberID {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrBarberNotFound
	}
	c.contacts = append(c.contacts, contactRecord{
		ID:      uuid.NewString(),
		From:    from,
		Message: msg,
		At:      time.Now().UTC(),
	})
	return nil
}
