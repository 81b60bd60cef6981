// Package registry provides metadata.Registry implementations backed by
// registry exports: JSON documents written, or served, by the site that
// owns the live component definitions.
package registry

import (
	"context"
	"os"
	"strings"

	"github.com/agentstation/pagetree/internal/transport"

	"github.com/agentstation/pagetree/pkg/errors"
	"github.com/agentstation/pagetree/pkg/metadata"
)

// File reads records from an export file on every call, so a refreshed
// export is picked up by the next discovery.
type File struct {
	path string
}

// NewFile creates a registry over the export at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Records implements metadata.Registry.
func (f *File) Records(ctx context.Context) ([]metadata.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, errors.WrapIO("read", f.path, err)
	}
	records, err := metadata.DecodeRecords(data)
	if err != nil {
		return nil, errors.WrapResource("decode", "registry", f.path, err)
	}
	return records, nil
}

// String returns the export path.
func (f *File) String() string { return f.path }

// Static serves a fixed record list.
type Static []metadata.Record

// Records implements metadata.Registry.
func (s Static) Records(context.Context) ([]metadata.Record, error) {
	return s, nil
}

// HTTP fetches the export from a site on every call.
type HTTP struct {
	url    string
	client *transport.Client
}

// NewHTTP creates a registry over the export served at url.
func NewHTTP(url string, client *transport.Client) *HTTP {
	if client == nil {
		client = transport.New(nil)
	}
	return &HTTP{url: url, client: client}
}

// Records implements metadata.Registry.
func (h *HTTP) Records(ctx context.Context) ([]metadata.Record, error) {
	data, err := h.client.Get(ctx, h.url)
	if err != nil {
		return nil, err
	}
	records, err := metadata.DecodeRecords(data)
	if err != nil {
		return nil, errors.WrapResource("decode", "registry", h.url, err)
	}
	return records, nil
}

// String returns the export URL.
func (h *HTTP) String() string { return h.url }

// Open returns an HTTP registry for http(s) targets and a File registry
// otherwise. auth only applies to HTTP targets.
func Open(target string, auth transport.Authenticator) metadata.Registry {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return NewHTTP(target, transport.New(auth))
	}
	return NewFile(target)
}
