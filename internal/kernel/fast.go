package kernel

import "math"

// The Fast* functions are the AVX2/Neon dispatch targets. Real SIMD
// intrinsics need architecture-specific assembly this module doesn't ship;
// these are 4-wide unrolled Go loops standing in for that lane width. They
// accumulate in float64 like the Scalar* reductions, but the L2 and dot
// reductions add four partial sums in a different order, so results agree
// with the Scalar* kernels to within float64 rounding rather than
// bit-for-bit (well inside P9's tolerance), while still being a distinct code path
// from the portable fallback, the same way the registry's closed-enum
// dispatch expects fast and scalar entries to differ structurally.

func dotF32Unrolled(a, b []float32) float64 {
	var s0, s1, s2, s3 float64
	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += float64(a[i]) * float64(b[i])
		s1 += float64(a[i+1]) * float64(b[i+1])
		s2 += float64(a[i+2]) * float64(b[i+2])
		s3 += float64(a[i+3]) * float64(b[i+3])
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func l2SqF32Unrolled(a, b []float32) float64 {
	var s0, s1, s2, s3 float64
	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		d0 := float64(a[i]) - float64(b[i])
		d1 := float64(a[i+1]) - float64(b[i+1])
		d2 := float64(a[i+2]) - float64(b[i+2])
		d3 := float64(a[i+3]) - float64(b[i+3])
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

func l1F32Unrolled(a, b []float32) float64 {
	var sum float64
	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		for j := 0; j < 4; j++ {
			d := float64(a[i+j]) - float64(b[i+j])
			if d < 0 {
				d = -d
			}
			sum += d
		}
	}
	for ; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

func normF32Unrolled(a []float32) float64 {
	return math.Sqrt(dotF32Unrolled(a, a))
}

// FastL1Float32, FastL2Float32, FastIPFloat32, FastCosineFloat32 and
// FastAngleFloat32 are the unrolled counterparts of the equivalent Scalar*
// functions over float32 elements.
func FastL1Float32(a, b []byte) float32 {
	return float32(l1F32Unrolled(DecodeFloat32(a), DecodeFloat32(b)))
}

func FastL2Float32(a, b []byte) float32 {
	return float32(math.Sqrt(l2SqF32Unrolled(DecodeFloat32(a), DecodeFloat32(b))))
}

func FastIPFloat32(a, b []byte) float32 {
	return float32(-dotF32Unrolled(DecodeFloat32(a), DecodeFloat32(b)))
}

func FastCosineFloat32(a, b []byte) float32 {
	av, bv := DecodeFloat32(a), DecodeFloat32(b)
	na, nb := normF32Unrolled(av), normF32Unrolled(bv)
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(1 - dotF32Unrolled(av, bv)/(na*nb))
}

func FastAngleFloat32(a, b []byte) float32 {
	av, bv := DecodeFloat32(a), DecodeFloat32(b)
	na, nb := normF32Unrolled(av), normF32Unrolled(bv)
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(safeAcos(dotF32Unrolled(av, bv) / (na * nb)))
}

func FastNormalizedL2Float32(a, b []byte) float32     { return FastL2Float32(a, b) }
func FastNormalizedCosineFloat32(a, b []byte) float32 { return FastCosineFloat32(a, b) }
func FastNormalizedAngleFloat32(a, b []byte) float32  { return FastAngleFloat32(a, b) }

// FastNormFloat32 is the unrolled Euclidean norm.
func FastNormFloat32(v []byte) float32 { return float32(normF32Unrolled(DecodeFloat32(v))) }

// FastNormalizeFloat32 mirrors ScalarNormalizeFloat32 using the unrolled
// norm reduction.
func FastNormalizeFloat32(dst, src []byte) {
	vs := DecodeFloat32(src)
	n := normF32Unrolled(vs)
	if n == 0 {
		if !sameBacking(dst, src) {
			copy(dst, src)
		}
		return
	}
	out := make([]float32, len(vs))
	for i, v := range vs {
		out[i] = float32(float64(v) / n)
	}
	EncodeFloat32(dst, out)
}

// FastHammingUint8 and FastJaccardUint8 call the scalar byte-at-a-time
// kernels directly; there is no word-at-a-time bitset path.
func FastHammingUint8(a, b []byte) float32 { return ScalarHammingUint8(a, b) }
func FastJaccardUint8(a, b []byte) float32 { return ScalarJaccardUint8(a, b) }
