// This package combines a codec and a compression algorithm into a single
// value serializer with in-memory and file-based entry points.
package serializer

import (
	"fmt"
	"os"

	"github.com/teenjuna/ga/codec/json"
	"github.com/teenjuna/ga/compress"
	"github.com/teenjuna/ga/internal"
)

type Serializer struct {
	cfg *config
}

// New creates a Serializer with the provided options.
//
// Default configuration:
//   - Codec: json
//   - Compression: none
//   - Level: [compress.DefaultLevel]
func New(options ...Option) *Serializer {
	return &Serializer{cfg: newConfig(options...)}
}

// Marshal encodes v with the codec and compresses the result.
func (s *Serializer) Marshal(v any) ([]byte, error) {
	data, err := s.cfg.codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	packed, err := s.cfg.compression.Compress(data, s.cfg.level)
	if err != nil {
		return nil, fmt.Errorf("compress %s: %w", s.cfg.compression.Name(), err)
	}

	return packed, nil
}

// Unmarshal decompresses data and decodes it into dest. Empty input is a
// no-op and leaves dest untouched.
func (s *Serializer) Unmarshal(data []byte, dest any) error {
	if len(data) == 0 {
		return nil
	}

	unpacked, err := s.cfg.compression.Decompress(data)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", s.cfg.compression.Name(), err)
	}

	if err := s.cfg.codec.Decode(unpacked, dest); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

// WriteFile marshals v and writes it to path, overwriting an existing file.
func (s *Serializer) WriteFile(path string, v any) error {
	data, err := s.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads path and unmarshals its content into dest. The compression
// must match the one used when the file was written.
func (s *Serializer) ReadFile(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.Unmarshal(data, dest)
}

type Option = func(*config)

func WithCodec(codec internal.Codec) Option {
	if codec == nil {
		panic("codec can't be nil")
	}
	return func(c *config) {
		c.codec = codec
	}
}

func WithCompression(compression internal.Compression) Option {
	if compression == nil {
		panic("compression can't be nil")
	}
	return func(c *config) {
		c.compression = compression
	}
}

func WithLevel(level int) Option {
	if level < 1 || level > 9 {
		panic("level must be between 1 and 9")
	}
	return func(c *config) {
		c.level = level
	}
}

type config struct {
	codec       internal.Codec
	compression internal.Compression
	level       int
}

func newConfig(options ...Option) *config {
	options = append([]Option{
		WithCodec(json.New()),
		WithCompression(compress.None()),
		WithLevel(compress.DefaultLevel),
	}, options...)

	cfg := config{}
	for _, opt := range options {
		opt(&cfg)
	}

	return &cfg
}
