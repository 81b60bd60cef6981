// Package store persists the component catalog in a key/value
// configuration store. Every backend guards writes with a revision token:
// a Put carrying a stale revision fails with a ConflictError, so two
// writers reconciling at once cannot silently overwrite each other.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentstation/pagetree/pkg/catalog"
	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
)

// Item is a stored value with its revision.
type Item struct {
	Data     []byte
	Revision string
}

// KV is a key/value store with compare-and-swap writes.
type KV interface {
	// Get returns the item stored under key, or a NotFoundError.
	Get(ctx context.Context, key string) (Item, error)
	// Put stores data under key when the stored revision equals revision
	// and returns the new revision. An empty revision means the key must
	// not exist yet.
	Put(ctx context.Context, key string, data []byte, revision string) (string, error)
	// Close releases the backend.
	Close() error
}

// newRevision returns a fresh revision token.
func newRevision() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// conflict builds the error returned when a revision check fails.
func conflict(key, expected, actual string) error {
	return errors.NewConflictError(key, expected, actual)
}

// Store reads and writes the catalog under one key.
type Store struct {
	kv  KV
	key string
}

// New creates a catalog store on kv. An empty key uses the default.
func New(kv KV, key string) *Store {
	if key == "" {
		key = constants.CatalogKey
	}
	return &Store{kv: kv, key: key}
}

// Key returns the key the catalog is stored under.
func (s *Store) Key() string { return s.key }

// Load returns the stored catalog and its revision. A missing catalog is
// not an error: it yields a nil catalog and an empty revision.
func (s *Store) Load(ctx context.Context) (catalog.Catalog, string, error) {
	item, err := s.kv.Get(ctx, s.key)
	if errors.IsNotFound(err) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", errors.WrapResource("load", "catalog", s.key, err)
	}
	c, err := catalog.Decode(item.Data)
	if err != nil {
		return nil, "", errors.WrapResource("load", "catalog", s.key, err)
	}
	return c, item.Revision, nil
}

// Save writes c if the stored revision still equals revision and returns
// the new revision.
func (s *Store) Save(ctx context.Context, c catalog.Catalog, revision string) (string, error) {
	data, err := catalog.Encode(c)
	if err != nil {
		return "", errors.WrapResource("save", "catalog", s.key, err)
	}
	rev, err := s.kv.Put(ctx, s.key, data, revision)
	if err != nil {
		if errors.IsConflict(err) {
			return "", err
		}
		return "", errors.WrapResource("save", "catalog", s.key, err)
	}
	return rev, nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}
