package compress

import (
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
)

type zstdCompression struct{}

// Zstd returns a Compression backed by the Zstandard format.
func Zstd() Compression { return zstdCompression{} }

func (zstdCompression) Name() string { return "zstd" }

func (zstdCompression) Compress(data []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(clampLevel(level))),
	)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func (zstdCompression) Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

type snappyCompression struct{}

// Snappy returns a Compression backed by the snappy block format. Snappy has
// no compression levels, so the level argument is ignored.
func Snappy() Compression { return snappyCompression{} }

func (snappyCompression) Name() string { return "snappy" }

func (snappyCompression) Compress(data []byte, level int) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (snappyCompression) Decompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}
