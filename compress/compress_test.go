package compress_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/teenjuna/ga/compress"
	"github.com/teenjuna/ga/internal/testing/require"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("shared memory shared memory ", 200))

	for _, name := range []string{"none", "gzip", "zlib", "zstd", "snappy"} {
		t.Run(name, func(t *testing.T) {
			c, err := compress.ByName(name)
			require.NoError(t, err)
			require.Equal(t, c.Name(), name)

			packed, err := c.Compress(payload, compress.DefaultLevel)
			require.NoError(t, err)

			unpacked, err := c.Decompress(packed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(unpacked, payload))

			if name != "none" {
				require.True(t, len(packed) < len(payload))
			}
		})
	}
}

func TestByName(t *testing.T) {
	c, err := compress.ByName("")
	require.NoError(t, err)
	require.Equal(t, c.Name(), "none")

	_, err = compress.ByName("blosc")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), `compression "blosc" not supported`)
}

func TestLevelsOutOfRange(t *testing.T) {
	payload := []byte(strings.Repeat("0123456789", 100))

	for _, level := range []int{-3, 0, 10, 100} {
		packed, err := compress.Gzip().Compress(payload, level)
		require.NoError(t, err)

		unpacked, err := compress.Gzip().Decompress(packed)
		require.NoError(t, err)
		require.True(t, bytes.Equal(unpacked, payload))
	}
}

func TestEmptyPayload(t *testing.T) {
	for _, name := range []string{"gzip", "zlib", "zstd", "snappy"} {
		c, err := compress.ByName(name)
		require.NoError(t, err)

		packed, err := c.Compress(nil, compress.DefaultLevel)
		require.NoError(t, err)

		unpacked, err := c.Decompress(packed)
		require.NoError(t, err)
		require.Equal(t, len(unpacked), 0)
	}
}
