package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrBarberNotFound     = errors.New("barber not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrMalformedResponse  = errors.New("malformed response")
)

// AuthError is the failure reported by login and registration. Message is
// meant for the person at the keyboard; Err keeps the underlying cause.
type AuthError struct {
	Op      string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Op + ": " + e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ErrorMessage returns the human-readable part of err.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
