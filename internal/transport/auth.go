package transport

import "net/http"

// Authenticator applies credentials to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth sends requests unauthenticated.
type NoAuth struct{}

// Apply implements Authenticator.
func (NoAuth) Apply(*http.Request) {}

// BearerAuth sends the token as a Bearer Authorization header.
type BearerAuth struct {
	Token string
}

// Apply implements Authenticator.
func (a BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// HeaderAuth sends the token in a custom header.
type HeaderAuth struct {
	Header string
	Token  string
}

// Apply implements Authenticator.
func (a HeaderAuth) Apply(req *http.Request) {
	req.Header.Set(a.Header, a.Token)
}

// ForToken picks an authenticator for a configured token. An empty token
// yields NoAuth; header selects HeaderAuth, otherwise Bearer.
func ForToken(token, header string) Authenticator {
	switch {
	case token == "":
		return NoAuth{}
	case header != "":
		return HeaderAuth{Header: header, Token: token}
	default:
		return BearerAuth{Token: token}
	}
}
