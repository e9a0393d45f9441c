// This package contains the main [Codec] interface and several implementations
// inside subpackages.
package codec

// Codec encodes and decodes arbitrary Go values into bytes.
//
// Implementations are not considered thread-safe and each instance is used by
// a single caller at a time.
type Codec interface {
	// Encode serializes a value into a byte slice.
	Encode(v any) ([]byte, error)
	// Decode deserializes a byte slice into dest, which must be a pointer.
	Decode(data []byte, dest any) error
}
