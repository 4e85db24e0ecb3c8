package domain

// SessionState names the resting states of a session.
type SessionState string

const (
	StateVerifying     SessionState = "verifying"
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// Session is an immutable snapshot of the client session. Capability flags
// are methods so they are always derived from User.
type Session struct {
	User       *User
	Credential string
	Loading    bool
	// Version increases with every committed transition.
	Version uint64
}

func (s Session) State() SessionState {
	switch {
	case s.Loading:
		return StateVerifying
	case s.User != nil:
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}

func (s Session) IsAuthenticated() bool {
	return s.User != nil
}

func (s Session) IsProvider() bool {
	return s.User != nil && s.User.Role == RoleProvider
}

func (s Session) IsClient() bool {
	return s.User != nil && s.User.Role == RoleClient
}

// CanContact reports whether the session may message a provider.
func (s Session) CanContact() bool {
	return s.IsClient()
}

// CanCreatePost reports whether the session may publish to the feed.
func (s Session) CanCreatePost() bool {
	return s.IsProvider()
}
