package internal

type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, dest any) error
}
