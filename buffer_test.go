package ga_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/teenjuna/ga"
	"github.com/teenjuna/ga/internal/testing/require"
)

func TestNumericBufferZeroValue(t *testing.T) {
	var b ga.NumericBuffer
	require.Equal(t, b.Value(), 0.0)
}

func TestNumericBufferScenario(t *testing.T) {
	b := ga.NewNumericBuffer(0)
	require.Equal(t, b.Add(5), 5.0)
	require.Equal(t, b.Value(), 5.0)
	require.Equal(t, b.Scale(2), 10.0)
	b.Reset(0)
	require.Equal(t, b.Value(), 0.0)
	require.Contains(t, b.String(), "NumericBuffer(value=0")
}

func TestNumericBufferInitial(t *testing.T) {
	b := ga.NewNumericBuffer(3.5)
	require.Equal(t, b.Add(-1.5), 2.0)
}

func TestNumericBufferIdentities(t *testing.T) {
	b := ga.NewNumericBuffer(42.25)
	require.Equal(t, b.Add(0), 42.25)
	require.Equal(t, b.Scale(1), 42.25)
	require.Equal(t, b.Value(), 42.25)
}

// The buffer must behave exactly like a left-to-right fold of the same
// operations over a plain float64.
func TestNumericBufferFold(t *testing.T) {
	for range 100 {
		initial := rand.Float64()*2000 - 1000
		b := ga.NewNumericBuffer(initial)
		want := initial

		for range 1000 {
			arg := rand.Float64()*20 - 10
			if rand.IntN(2) == 0 {
				want += arg
				require.Equal(t, b.Add(arg), want)
			} else {
				want *= arg
				require.Equal(t, b.Scale(arg), want)
			}
		}

		require.Equal(t, b.Value(), want)
	}
}

func TestNumericBufferReset(t *testing.T) {
	b := ga.NewNumericBuffer(1)

	b.Reset(123.5)
	require.Equal(t, b.Value(), 123.5)

	b.Reset(math.Inf(1))
	require.Equal(t, b.Value(), math.Inf(1))

	b.Reset(math.Inf(-1))
	require.Equal(t, b.Value(), math.Inf(-1))

	b.Reset(math.NaN())
	require.True(t, math.IsNaN(b.Value()))
}

func TestNumericBufferNonFinite(t *testing.T) {
	b := ga.NewNumericBuffer(math.Inf(1))
	require.Equal(t, b.Add(1), math.Inf(1))
	require.True(t, math.IsNaN(b.Scale(0)))
	require.True(t, math.IsNaN(b.Add(1)))
}

func TestNumericBufferString(t *testing.T) {
	b := ga.NewNumericBuffer(1.5)
	require.Equal(t, b.String(), "NumericBuffer(value=1.5)")
	b.Scale(2)
	require.Equal(t, b.String(), "NumericBuffer(value=3)")
}
