package json_test

import (
	"testing"

	"github.com/teenjuna/ga/codec/json"
	"github.com/teenjuna/ga/internal/testing/require"
)

func TestCodec(t *testing.T) {
	type Item struct {
		ID string
		N  float64
	}

	c := json.New()

	data, err := c.Encode(Item{ID: "a", N: 1.5})
	require.NoError(t, err)

	var got Item
	require.NoError(t, c.Decode(data, &got))
	require.Equal(t, got, Item{ID: "a", N: 1.5})
}

func TestCodecDecodeError(t *testing.T) {
	c := json.New()

	var got map[string]any
	err := c.Decode([]byte("{not json"), &got)
	require.NotNil(t, err)
}
