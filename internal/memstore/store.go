// In-process key-value store used by the local backend when no file is
// configured.
package memstore

import (
	"context"
	"errors"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/teenjuna/ga/internal"
)

var (
	// ErrClosed is returned by Store methods when the store has been closed.
	ErrClosed = errors.New("store is closed")
)

type Store struct {
	mu     sync.RWMutex
	items  map[string][]byte
	closed bool
}

var _ internal.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		items: make(map[string][]byte),
	}
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	v := make([]byte, len(value))
	copy(v, value)
	s.items[key] = v

	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	value, ok := s.items[key]
	if !ok {
		return nil, internal.ErrNotFound
	}

	v := make([]byte, len(value))
	copy(v, value)

	return v, nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	for _, key := range keys {
		delete(s.items, key)
	}

	return nil
}

func (s *Store) Keys(ctx context.Context, match string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		ok, err := matchKey(match, key)
		if err != nil {
			return nil, err
		}
		if ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	return keys, nil
}

// matchKey matches key against the glob pattern. Keys are flat strings, not
// paths, so "/" is hidden from the path-aware matcher and "*" crosses it the
// way SQLite GLOB and Redis MATCH do.
func matchKey(match, key string) (bool, error) {
	const sep = "\x00"
	return path.Match(
		strings.ReplaceAll(match, "/", sep),
		strings.ReplaceAll(key, "/", sep),
	)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.closed = true

	return nil
}
