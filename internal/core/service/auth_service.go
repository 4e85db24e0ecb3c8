package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/barbercommunity/marketplace/internal/core/domain"
	"github.com/barbercommunity/marketplace/internal/core/ports"
)

// AuthService implements registration, login and token resolution for the
// stub API.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
	if reg.Name == "" || reg.Email == "" || reg.Password == "" || !reg.Role.Valid() {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Name:         reg.Name,
		Email:        strings.ToLower(reg.Email),
		PasswordHash: string(hash),
		Role:         reg.Role,
		Location:     reg.Location,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Resolve returns the user a validated token refers to.
func (s *AuthService) Resolve(ctx context.Context, id domain.ID) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  string(user.ID),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
