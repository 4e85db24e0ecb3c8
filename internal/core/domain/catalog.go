package domain

import "time"

// Pagination describes a page of a listing.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// Post is a feed entry published by a provider.
type Post struct {
	ID           ID        `json:"id"`
	UserID       ID        `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserRole     string    `json:"user_role"`
	UserLocation string    `json:"user_location,omitempty"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url,omitempty"`
	LikesCount   int       `json:"likes_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Barber is a provider's public directory profile.
type Barber struct {
	ID              ID      `json:"id"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	Rating          float64 `json:"rating"`
	ExperienceYears int     `json:"experience_years"`
	PriceRange      string  `json:"price_range,omitempty"`
	Services        string  `json:"services,omitempty"`
	Bio             string  `json:"bio,omitempty"`
}

// BarberStats aggregates a provider's activity.
type BarberStats struct {
	TotalPosts    int `json:"totalPosts"`
	TotalContacts int `json:"totalContacts"`
}

// BarberProfile is the payload of a provider's profile page.
type BarberProfile struct {
	Barber Barber      `json:"barber"`
	Posts  []Post      `json:"posts"`
	Stats  BarberStats `json:"stats"`
}

// ContactMessage is sent by a client to a provider.
type ContactMessage struct {
	BarberID ID     `json:"barberId" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
}
