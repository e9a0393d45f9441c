// This package contains the main [Compression] interface and implementations
// of the supported compression algorithms.
package compress

import (
	"fmt"

	"github.com/teenjuna/ga/internal"
)

var (
	_ internal.Compression = None()
	_ internal.Compression = Gzip()
	_ internal.Compression = Zlib()
	_ internal.Compression = Zstd()
	_ internal.Compression = Snappy()
)

// DefaultLevel is the compression level used when callers don't pick one.
// Levels follow the usual 1 (fastest) to 9 (smallest) convention; algorithms
// without levels ignore it.
const DefaultLevel = 5

// Compression compresses and decompresses opaque byte payloads.
//
// Implementations are stateless and safe for concurrent use.
type Compression interface {
	// Name returns the canonical algorithm name, e.g. "gzip".
	Name() string
	// Compress returns the compressed form of data at the given level.
	Compress(data []byte, level int) ([]byte, error)
	// Decompress reverses Compress.
	Decompress(data []byte) ([]byte, error)
}

// ByName returns the Compression registered under name. The empty string and
// "none" mean no compression.
func ByName(name string) (Compression, error) {
	switch name {
	case "", "none":
		return None(), nil
	case "gzip":
		return Gzip(), nil
	case "zlib":
		return Zlib(), nil
	case "zstd":
		return Zstd(), nil
	case "snappy":
		return Snappy(), nil
	default:
		return nil, fmt.Errorf("compression %q not supported", name)
	}
}

type none struct{}

// None returns a pass-through Compression.
func None() Compression { return none{} }

func (none) Name() string { return "none" }

func (none) Compress(data []byte, level int) ([]byte, error) {
	return data, nil
}

func (none) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
