package store

import (
	"context"
	"strings"

	"github.com/agentstation/pagetree/pkg/errors"
)

// Open creates a KV from a store URL:
//
//	memory://
//	file://path/to/catalog.yaml   (or a bare path)
//	sqlite://path/to/pagetree.db
//	redis://[:password@]host:port/db
func Open(ctx context.Context, rawURL string) (KV, error) {
	switch {
	case rawURL == "" || strings.HasPrefix(rawURL, "memory://"):
		return NewMemory(), nil
	case strings.HasPrefix(rawURL, "file://"):
		return fileStore(strings.TrimPrefix(rawURL, "file://"))
	case strings.HasPrefix(rawURL, "sqlite://"):
		path := strings.TrimPrefix(rawURL, "sqlite://")
		if path == "" {
			return nil, errors.NewConfigError("store", "sqlite store needs a path", nil)
		}
		return OpenSQLite(path)
	case strings.HasPrefix(rawURL, "redis://"), strings.HasPrefix(rawURL, "rediss://"):
		return OpenRedis(ctx, rawURL)
	case strings.Contains(rawURL, "://"):
		return nil, errors.NewConfigError("store", "unsupported store URL "+rawURL, nil)
	default:
		return fileStore(rawURL)
	}
}

func fileStore(path string) (KV, error) {
	if path == "" {
		return nil, errors.NewConfigError("store", "file store needs a path", nil)
	}
	return NewFile(path), nil
}
