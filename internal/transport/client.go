// Package transport is the HTTP client used to read registry exports
// published by a running site.
package transport

import (
	"context"
	"io"
	"net/http"

	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
)

// maxResponseSize bounds a registry export read over HTTP.
const maxResponseSize = 32 << 20

// Client performs authenticated GET requests.
type Client struct {
	http *http.Client
	auth Authenticator
}

// New creates a client. A nil authenticator sends requests unauthenticated.
func New(auth Authenticator) *Client {
	if auth == nil {
		auth = NoAuth{}
	}
	return &Client{
		http: &http.Client{Timeout: constants.DiscoveryTimeout},
		auth: auth,
	}
}

// Get fetches url and returns the body of a 200 response. Other statuses
// return an APIError carrying the start of the body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	req.Header.Set("Accept", "application/json")
	c.auth.Apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapIO("get", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.WrapIO("read", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := string(body)
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, &errors.APIError{Endpoint: url, StatusCode: resp.StatusCode, Message: msg}
	}
	return body, nil
}
