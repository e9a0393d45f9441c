package memstore_test

import (
	"testing"

	"github.com/teenjuna/ga/internal"
	"github.com/teenjuna/ga/internal/memstore"
	"github.com/teenjuna/ga/internal/testing/require"
)

func TestSetGet(t *testing.T) {
	s := memstore.New()
	ctx := t.Context()

	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	require.NoError(t, s.Set(ctx, "a", []byte("2")))

	value, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, value, []byte("2"))

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, internal.ErrNotFound)
}

// Mutating a value after Set (or after Get) must not affect the stored copy.
func TestCopies(t *testing.T) {
	s := memstore.New()
	ctx := t.Context()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "a", in))
	in[0] = 'x'

	out, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, out, []byte("abc"))

	out[0] = 'y'

	out, err = s.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, out, []byte("abc"))
}

func TestDeleteAndKeys(t *testing.T) {
	s := memstore.New()
	ctx := t.Context()

	require.NoError(t, s.Set(ctx, "jobs:1", []byte("a")))
	require.NoError(t, s.Set(ctx, "jobs:2", []byte("b")))
	require.NoError(t, s.Set(ctx, "users:1", []byte("c")))

	keys, err := s.Keys(ctx, "jobs:*")
	require.NoError(t, err)
	require.Equal(t, keys, []string{"jobs:1", "jobs:2"})

	require.NoError(t, s.Delete(ctx, "jobs:1", "missing"))

	keys, err = s.Keys(ctx, "*")
	require.NoError(t, err)
	require.Equal(t, keys, []string{"jobs:2", "users:1"})
}

// Keys are flat strings: "*" must match across "/" like SQLite GLOB and
// Redis MATCH do.
func TestKeysWithSlashes(t *testing.T) {
	s := memstore.New()
	ctx := t.Context()

	require.NoError(t, s.Set(ctx, "a/b", []byte("1")))
	require.NoError(t, s.Set(ctx, "a/b/c", []byte("2")))
	require.NoError(t, s.Set(ctx, "plain", []byte("3")))

	keys, err := s.Keys(ctx, "*")
	require.NoError(t, err)
	require.Equal(t, keys, []string{"a/b", "a/b/c", "plain"})

	keys, err = s.Keys(ctx, "a/*")
	require.NoError(t, err)
	require.Equal(t, keys, []string{"a/b", "a/b/c"})

	keys, err = s.Keys(ctx, "a/?")
	require.NoError(t, err)
	require.Equal(t, keys, []string{"a/b"})
}

func TestClosed(t *testing.T) {
	s := memstore.New()
	ctx := t.Context()

	require.NoError(t, s.Close())

	require.ErrorIs(t, s.Set(ctx, "a", []byte("1")), memstore.ErrClosed)

	_, err := s.Get(ctx, "a")
	require.ErrorIs(t, err, memstore.ErrClosed)

	_, err = s.Keys(ctx, "*")
	require.ErrorIs(t, err, memstore.ErrClosed)
}
