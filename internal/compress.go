package internal

type Compression interface {
	Name() string
	Compress(data []byte, level int) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}
