package ports

import "context"

// CredentialStore persists the bearer credential across process restarts.
// Get returns an empty string and a nil error when nothing is stored.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, credential string) error
	Clear(ctx context.Context) error
}
