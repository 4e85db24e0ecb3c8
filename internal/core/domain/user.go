package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is the marketplace side a user belongs to.
type Role string

const (
	RoleProvider Role = "BARBERO"
	RoleClient   Role = "CLIENTE"
)

// ParseRole normalises a wire role. The API speaks BARBERO/CLIENTE; the
// English PROVIDER/CLIENT spellings are accepted as aliases.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleProvider), "PROVIDER":
		return RoleProvider, nil
	case string(RoleClient), "CLIENT":
		return RoleClient, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleProvider || r == RoleClient
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: role must be a string", ErrInvalidRole)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ID is an opaque identifier. The API may send it as a JSON number or a
// string; both decode to the same textual form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// User models an authenticated actor in the marketplace.
type User struct {
	ID           ID        `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

// Validate checks the fields a session relies on. A user without an id or
// with an unknown role is treated as a malformed server response.
func (u *User) Validate() error {
	if u == nil {
		return fmt.Errorf("%w: missing user", ErrMalformedResponse)
	}
	if u.ID == "" {
		return fmt.Errorf("%w: user without id", ErrMalformedResponse)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: user %s has role %q", ErrMalformedResponse, u.ID, u.Role)
	}
	return nil
}

// Clone returns a copy safe to hand out to consumers.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Registration is the profile submitted when creating an account.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required"`
	Location string `json:"location,omitempty"`
}

// LoginRequest carries the credentials for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
