package ga

import "fmt"

// NumericBuffer is a scalar accumulator: a single float64 mutated in place by
// sequential operations.
//
// The zero value holds 0. Arithmetic follows IEEE-754 semantics, so NaN and
// ±Inf propagate through [NumericBuffer.Add] and [NumericBuffer.Scale] without
// clamping or validation.
//
// NumericBuffer is not considered thread-safe; concurrent callers must
// serialize access externally.
type NumericBuffer struct {
	value float64
}

// NewNumericBuffer returns a buffer initialized to the given value.
func NewNumericBuffer(initial float64) *NumericBuffer {
	return &NumericBuffer{value: initial}
}

// Add adds delta to the current value and returns the updated value.
func (b *NumericBuffer) Add(delta float64) float64 {
	b.value += delta
	return b.value
}

// Scale multiplies the current value by factor and returns the updated value.
func (b *NumericBuffer) Scale(factor float64) float64 {
	b.value *= factor
	return b.value
}

// Reset unconditionally overwrites the current value.
func (b *NumericBuffer) Reset(value float64) {
	b.value = value
}

// Value returns the current value without mutating it.
func (b *NumericBuffer) Value() float64 {
	return b.value
}

// String implements [fmt.Stringer] in the form "NumericBuffer(value=<v>)".
func (b *NumericBuffer) String() string {
	return fmt.Sprintf("NumericBuffer(value=%v)", b.value)
}
