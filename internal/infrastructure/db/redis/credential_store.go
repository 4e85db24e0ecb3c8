package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "marketplace:credential:"

// CredentialStore keeps the bearer credential in Redis under a fixed key so
// several client processes on one machine share a session.
// Key format: marketplace:credential:<name>
type CredentialStore struct {
	client *redis.Client
	key    string
}

// NewCredentialStore creates a CredentialStore storing under name.
func NewCredentialStore(client *redis.Client, name string) *CredentialStore {
	return &CredentialStore{client: client, key: keyPrefix + name}
}

func (s *CredentialStore) Get(ctx context.Context) (string, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("credential get: %w", err)
	}
	return v, nil
}

func (s *CredentialStore) Set(ctx context.Context, credential string) error {
	if err := s.client.Set(ctx, s.key, credential, 0).Err(); err != nil {
		return fmt.Errorf("credential set: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("credential clear: %w", err)
	}
	return nil
}
