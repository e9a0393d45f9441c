package json

import (
	"encoding/json"

	"github.com/teenjuna/ga/internal"
)

type Codec struct{}

var _ internal.Codec = (*Codec)(nil)

func New() *Codec {
	return &Codec{}
}

func (c *Codec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *Codec) Decode(data []byte, dest any) error {
	return json.Unmarshal(data, dest)
}
