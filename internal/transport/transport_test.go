package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pagetree/pkg/errors"
)

func TestForToken(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		check  func(*testing.T, *http.Request)
	}{
		{
			name: "none",
			check: func(t *testing.T, r *http.Request) {
				assert.Empty(t, r.Header.Get("Authorization"))
			},
		},
		{
			name:  "bearer",
			token: "abc",
			check: func(t *testing.T, r *http.Request) {
				assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
			},
		},
		{
			name:   "header",
			token:  "abc",
			header: "X-Registry-Token",
			check: func(t *testing.T, r *http.Request) {
				assert.Equal(t, "abc", r.Header.Get("X-Registry-Token"))
				assert.Empty(t, r.Header.Get("Authorization"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/export", nil)
			ForToken(tt.token, tt.header).Apply(req)
			tt.check(t, req)
		})
	}
}

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"components":[]}`))
		case "/missing":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(strings.Repeat("e", 500)))
		}
	}))
	t.Cleanup(srv.Close)

	c := New(nil)

	body, err := c.Get(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.JSONEq(t, `{"components":[]}`, string(body))

	_, err = c.Get(context.Background(), srv.URL+"/missing")
	assert.True(t, errors.IsNotFound(err))

	_, err = c.Get(context.Background(), srv.URL+"/broken")
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Len(t, apiErr.Message, 200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Get(ctx, srv.URL+"/ok")
	assert.ErrorIs(t, err, context.Canceled)
}
