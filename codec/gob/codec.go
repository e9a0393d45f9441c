package gob

import (
	"bytes"
	"encoding/gob"

	"github.com/teenjuna/ga/internal"
)

// Codec encodes values with encoding/gob. It is stateless and safe for
// concurrent use.
type Codec struct{}

var _ internal.Codec = (*Codec)(nil)

func New() *Codec {
	return &Codec{}
}

func (c *Codec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Codec) Decode(data []byte, dest any) error {
	dec := gob.NewDecoder(bytes.NewReader(data))
	return dec.Decode(dest)
}
