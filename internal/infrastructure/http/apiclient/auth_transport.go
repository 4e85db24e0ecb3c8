package apiclient

import (
	"net/http"
	"sync/atomic"
)

// CredentialSource yields the credential for the next outgoing request. An
// empty string means anonymous.
type CredentialSource interface {
	Credential() string
}

// AuthTransport injects "Authorization: Bearer <credential>" into each
// request from the bound source at send time. When the source is empty the
// header is stripped. A header set explicitly on the request wins.
type AuthTransport struct {
	Base http.RoundTripper

	source atomic.Pointer[boundSource]
}

type boundSource struct {
	src CredentialSource
}

// Bind sets the credential source. Safe to call concurrently with requests.
func (t *AuthTransport) Bind(src CredentialSource) {
	if src == nil {
		t.source.Store(nil)
		return
	}
	t.source.Store(&boundSource{src: src})
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if req.Header.Get("Authorization") != "" {
		return base.RoundTrip(req)
	}

	credential := ""
	if b := t.source.Load(); b != nil {
		credential = b.src.Credential()
	}

	// RoundTrippers must not mutate the caller's request.
	out := req.Clone(req.Context())
	if credential != "" {
		out.Header.Set("Authorization", bearer(credential))
	} else {
		out.Header.Del("Authorization")
	}
	return base.RoundTrip(out)
}

func bearer(credential string) string {
	return "Bearer " + credential
}
