package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/agentstation/pagetree/pkg/constants"
	"github.com/agentstation/pagetree/pkg/errors"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS config (
	key        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	revision   TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLite is a KV in a SQLite database table.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (and creates if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", filepath.Dir(path), err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapResource("open", "store", path, err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errors.WrapResource("open", "store", path, err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Get implements KV.
func (s *SQLite) Get(ctx context.Context, key string) (Item, error) {
	var item Item
	err := s.db.QueryRowContext(ctx, `SELECT data, revision FROM config WHERE key = ?`, key).
		Scan(&item.Data, &item.Revision)
	if err == sql.ErrNoRows {
		return Item{}, errors.NewNotFoundError("key", key)
	}
	if err != nil {
		return Item{}, errors.WrapResource("get", "key", key, err)
	}
	return item, nil
}

// Put implements KV.
func (s *SQLite) Put(ctx context.Context, key string, data []byte, revision string) (string, error) {
	rev := newRevision()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var (
		res sql.Result
		err error
	)
	if revision == "" {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO config (key, data, revision, updated_at) VALUES (?, ?, ?, ?) ON CONFLICT(key) DO NOTHING`,
			key, data, rev, now)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE config SET data = ?, revision = ?, updated_at = ? WHERE key = ? AND revision = ?`,
			data, rev, now, key, revision)
	}
	if err != nil {
		return "", errors.WrapResource("put", "key", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", errors.WrapResource("put", "key", key, err)
	}
	if n == 0 {
		current := ""
		if item, err := s.Get(ctx, key); err == nil {
			current = item.Revision
		}
		return "", conflict(key, revision, current)
	}
	return rev, nil
}

// Close implements KV.
func (s *SQLite) Close() error {
	return s.db.Close()
}
