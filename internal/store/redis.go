package store

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/agentstation/pagetree/pkg/errors"
)

// Hash fields of a stored item.
const (
	fieldData     = "data"
	fieldRevision = "revision"
)

// Redis is a KV of Redis hashes. Writes use WATCH/MULTI so a concurrent
// write between the revision check and the update aborts the transaction.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis store on an existing client. Keys are stored
// under prefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// OpenRedis connects to the server described by a redis:// URL.
func OpenRedis(ctx context.Context, rawURL string) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, errors.NewConfigError("store", "invalid redis URL", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.WrapResource("open", "store", opts.Addr, err)
	}
	return NewRedis(client, ""), nil
}

// Get implements KV.
func (r *Redis) Get(ctx context.Context, key string) (Item, error) {
	return r.get(ctx, r.client, key)
}

// hashReader is the part of a client or transaction get needs.
type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func (r *Redis) get(ctx context.Context, c hashReader, key string) (Item, error) {
	vals, err := c.HGetAll(ctx, r.prefix+key).Result()
	if err != nil {
		return Item{}, errors.WrapResource("get", "key", key, err)
	}
	rev, ok := vals[fieldRevision]
	if !ok {
		return Item{}, errors.NewNotFoundError("key", key)
	}
	return Item{Data: []byte(vals[fieldData]), Revision: rev}, nil
}

// Put implements KV.
func (r *Redis) Put(ctx context.Context, key string, data []byte, revision string) (string, error) {
	full := r.prefix + key
	rev := newRevision()

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current := ""
		item, err := r.get(ctx, tx, key)
		switch {
		case err == nil:
			current = item.Revision
		case !errors.IsNotFound(err):
			return err
		}
		if current != revision {
			return conflict(key, revision, current)
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, full, fieldData, data, fieldRevision, rev)
			return nil
		})
		return err
	}, full)

	if errors.Is(err, redis.TxFailedErr) {
		return "", conflict(key, revision, "")
	}
	if err != nil {
		if errors.IsConflict(err) {
			return "", err
		}
		return "", errors.WrapResource("put", "key", key, err)
	}
	return rev, nil
}

// Close implements KV.
func (r *Redis) Close() error {
	return r.client.Close()
}
