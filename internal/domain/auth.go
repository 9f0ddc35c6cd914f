package domain

import (
	"encoding/base64"
	"net/http"
)

// Credentials holds the identity used for Jira Cloud authentication:
// an account email paired with an API token.
type Credentials struct {
	Email    string
	APIToken string
}

// NewAuthenticatedClient returns an HTTP client that authenticates every
// request with the given credentials. Completeness of the credentials is
// enforced by configuration validation before this is called.
func NewAuthenticatedClient(creds Credentials) *http.Client {
	return &http.Client{
		Transport: &authenticatedTransport{
			base:        http.DefaultTransport,
			credentials: creds,
		},
	}
}

// authenticatedTransport is an http.RoundTripper that adds the basic auth
// header Jira Cloud expects: base64 of "email:token".
type authenticatedTransport struct {
	base        http.RoundTripper
	credentials Credentials
}

// RoundTrip implements http.RoundTripper by adding the Authorization
// header to a clone of the request.
func (t *authenticatedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clonedReq := req.Clone(req.Context())

	auth := t.credentials.Email + ":" + t.credentials.APIToken
	encodedAuth := base64.StdEncoding.EncodeToString([]byte(auth))
	clonedReq.Header.Set("Authorization", "Basic "+encodedAuth)

	return t.base.RoundTrip(clonedReq)
}
