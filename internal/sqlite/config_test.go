package sqlite

import (
	"testing"

	"github.com/teenjuna/ga/internal/testing/require"
)

func TestWithFile(t *testing.T) {
	require.PanicWithError(t, "file can't be blank", func() {
		WithFile(" ")
	})
	require.PanicWithError(t, "file can't contain ?", func() {
		WithFile("kv.db?key=value")
	})
}
