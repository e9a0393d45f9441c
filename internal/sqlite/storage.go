package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/teenjuna/ga/internal"
)

var (
	// ErrClosed is returned by Storage methods when the storage has been closed.
	ErrClosed = errors.New("storage is closed")
)

const (
	memory = ":memory:"
)

// Storage is a persistent key-value store backed by SQLite.
type Storage struct {
	cfg *Config
	db  *sql.DB
}

var _ internal.Store = (*Storage)(nil)

// New creates a new Storage with the provided configuration functions.
//
// Default configuration:
//   - File: ":memory:" (in-memory database)
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New(configFuncs ...ConfigFunc) (*Storage, error) {
	cfg := &Config{file: memory}
	for _, cf := range configFuncs {
		cf(cfg)
	}

	db, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := setup(db); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	storage := Storage{
		cfg: cfg,
		db:  db,
	}

	return &storage, nil
}

// Set stores value under key, overwriting any previous value.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`
		insert into kv (key, value, updated_at)
		values (:key, :value, :updated_at)
		on conflict (key) do update set
			value = excluded.value,
			updated_at = excluded.updated_at
		`,
		sql.Named("key", key),
		sql.Named("value", value),
		sql.Named("updated_at", time.Now().UnixNano()),
	)
	return closedErr(err)
}

// Get returns the value stored under key.
//
// Returns [internal.ErrNotFound] if the key does not exist and [ErrClosed]
// if the storage has been closed.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`select value from kv where key = :key`,
		sql.Named("key", key),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internal.ErrNotFound
	} else if err != nil {
		return nil, closedErr(err)
	}
	return value, nil
}

// Delete removes the given keys. Missing keys are ignored.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`
		delete from kv
		where
			key in (
				select value from json_each(:keys)
			)
		`,
		sql.Named("keys", jsonKeys(keys)),
	)
	return closedErr(err)
}

// Keys returns all keys matching the glob pattern, sorted.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Keys(ctx context.Context, match string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`
		select key from kv
		where key glob :match
		order by key asc
		`,
		sql.Named("match", match),
	)
	if err != nil {
		if err := closedErr(err); errors.Is(err, ErrClosed) {
			return nil, err
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return keys, nil
}

// Close closes the underlying SQLite database.
//
// After closing, all methods on Storage will return [ErrClosed].
func (s *Storage) Close() error {
	return s.db.Close()
}

func open(cfg *Config) (*sql.DB, error) {
	params := url.Values{}
	params.Add("_txlock", "immediate")
	params.Add("_timeout", "5000") // 5s

	uri := url.URL{Opaque: cfg.file}
	if cfg.file == memory {
		uri.Opaque = internal.GenerateID(10)
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	} else {
		params.Add("_journal", "wal")
		params.Add("_cache_size", "-20000") // 20mb
		if cfg.durable {
			params.Add("_sync", "full")
		} else {
			params.Add("_sync", "normal")
		}
	}

	uri.RawQuery = params.Encode()

	db, err := sql.Open("sqlite3", uri.String())
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	if params.Get("mode") == "memory" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	return db, nil
}

func setup(db *sql.DB) error {
	if _, err := db.Exec(
		`
		create table if not exists kv (
			key        text primary key,
			value      blob not null,
			updated_at int not null
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return nil
}

func jsonKeys(keys []string) string {
	jsonKeys, _ := json.Marshal(keys)
	return string(jsonKeys)
}

// closedErr maps database/sql's opaque closed-database error to [ErrClosed].
func closedErr(err error) error {
	if err != nil && err.Error() == "sql: database is closed" {
		return ErrClosed
	}
	return err
}
