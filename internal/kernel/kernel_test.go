package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeF32(t *testing.T, vs []float32) []byte {
	t.Helper()
	b := make([]byte, 4*len(vs))
	EncodeFloat32(b, vs)
	return b
}

func TestFloat16RoundTrip(t *testing.T) {
	vs := []float32{0, 1, -1, 0.5, -0.5, 3.14159, 65504, -65504, 1e-5}
	b := make([]byte, 2*len(vs))
	EncodeFloat16(b, vs)
	got := DecodeFloat16(b)
	for i, want := range vs {
		require.InDelta(t, float64(want), float64(got[i]), 0.01, "index %d", i)
	}
}

func TestCosineZeroNormReturnsZero(t *testing.T) {
	zero := encodeF32(t, []float32{0, 0, 0})
	nonzero := encodeF32(t, []float32{1, 2, 3})
	require.Equal(t, float32(0), ScalarCosineFloat32(zero, nonzero))
	require.Equal(t, float32(0), ScalarAngleFloat32(zero, nonzero))
}

func TestJaccardZeroUnionReturnsZero(t *testing.T) {
	a := []byte{0, 0}
	b := []byte{0, 0}
	require.Equal(t, float32(0), ScalarJaccardUint8(a, b))
}

func TestAngleClampsPastUnitCosine(t *testing.T) {
	v := encodeF32(t, []float32{1, 0})
	// A vector against itself has cosine exactly 1 up to rounding; angle
	// must not NaN out from acos of a value that drifts above 1.
	got := ScalarAngleFloat32(v, v)
	require.False(t, math.IsNaN(float64(got)))
	require.InDelta(t, 0, got, 1e-4)
}

func TestFastAgreesWithScalar(t *testing.T) {
	a := encodeF32(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9})
	b := encodeF32(t, []float32{9, 8, 7, 6, 5, 4, 3, 2, 1})

	require.InDelta(t, ScalarL1Float32(a, b), FastL1Float32(a, b), 1e-4)
	require.InDelta(t, ScalarL2Float32(a, b), FastL2Float32(a, b), 1e-4)
	require.InDelta(t, ScalarIPFloat32(a, b), FastIPFloat32(a, b), 1e-4)
	require.InDelta(t, ScalarCosineFloat32(a, b), FastCosineFloat32(a, b), 1e-4)
	require.InDelta(t, ScalarAngleFloat32(a, b), FastAngleFloat32(a, b), 1e-4)
}

func TestNormalizeProducesUnitNorm(t *testing.T) {
	src := encodeF32(t, []float32{3, 4})
	dst := make([]byte, len(src))
	ScalarNormalizeFloat32(dst, src)
	require.InDelta(t, 1.0, ScalarNormFloat32(dst), 1e-4)
}

func TestNormalizeZeroVectorLeavesZero(t *testing.T) {
	src := encodeF32(t, []float32{0, 0, 0})
	dst := make([]byte, len(src))
	ScalarNormalizeFloat32(dst, src)
	require.Equal(t, float32(0), ScalarNormFloat32(dst))
}

func TestHammingCountsDifferingBits(t *testing.T) {
	a := []byte{0b1111_0000}
	b := []byte{0b0000_1111}
	require.Equal(t, float32(8), ScalarHammingUint8(a, b))
}
