package kernel

import "math"

// The Scalar* functions below are the SimdNone reference kernels: portable
// Go loops with no assumptions about the caller's CPU. Every SIMD-level
// fast path must agree with these within the registry's kernel-agreement
// tolerance (spec §4.5, P9); the fast.go variants in this package use their
// own unrolled float64 reductions, which differ from these only in the order
// partial sums are added.

// ScalarL1Float32 is the sum of absolute per-element differences.
func ScalarL1Float32(a, b []byte) float32 {
	return float32(l1F32(DecodeFloat32(a), DecodeFloat32(b)))
}

// ScalarL2Float32 is the Euclidean distance.
func ScalarL2Float32(a, b []byte) float32 {
	return float32(math.Sqrt(l2SqF32(DecodeFloat32(a), DecodeFloat32(b))))
}

// ScalarIPFloat32 is the negated dot product, so that smaller means closer
// like every other distance in the registry.
func ScalarIPFloat32(a, b []byte) float32 {
	return float32(-dotF32(DecodeFloat32(a), DecodeFloat32(b)))
}

// ScalarCosineFloat32 is 1 - cosine similarity. Returns 0 if either operand
// has zero norm (spec §4.5: "cosine and normalized metrics return 0 when
// either norm is 0").
func ScalarCosineFloat32(a, b []byte) float32 {
	dot, na, nb := cosineF32(DecodeFloat32(a), DecodeFloat32(b))
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(1 - dot/(na*nb))
}

// ScalarAngleFloat32 is acos(clamp(cosine, -1, 1)).
func ScalarAngleFloat32(a, b []byte) float32 {
	dot, na, nb := cosineF32(DecodeFloat32(a), DecodeFloat32(b))
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(safeAcos(dot / (na * nb)))
}

// ScalarNormalizedL2Float32, ScalarNormalizedCosineFloat32 and
// ScalarNormalizedAngleFloat32 assume their inputs already carry unit norm
// (the vector-space factory runs NormalizeFn ahead of storage for these
// metrics) and reuse the un-normalized formulas directly.
func ScalarNormalizedL2Float32(a, b []byte) float32     { return ScalarL2Float32(a, b) }
func ScalarNormalizedCosineFloat32(a, b []byte) float32 { return ScalarCosineFloat32(a, b) }
func ScalarNormalizedAngleFloat32(a, b []byte) float32  { return ScalarAngleFloat32(a, b) }

// ScalarNormFloat32 is the Euclidean norm.
func ScalarNormFloat32(v []byte) float32 { return float32(normF32(DecodeFloat32(v))) }

// ScalarNormalizeFloat32 overwrites dst with the unit-norm form of src. If
// src has zero norm, dst receives an unchanged copy of src (all zeros).
func ScalarNormalizeFloat32(dst, src []byte) {
	vs := DecodeFloat32(src)
	n := normF32(vs)
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

// ScalarL2Float16, ScalarIPFloat16 and ScalarCosineFloat16 mirror the
// float32 kernels over a half-precision element type, decoded to float32
// for the reduction.
func ScalarL2Float16(a, b []byte) float32 {
	return float32(math.Sqrt(l2SqF32(DecodeFloat16(a), DecodeFloat16(b))))
}

func ScalarIPFloat16(a, b []byte) float32 {
	return float32(-dotF32(DecodeFloat16(a), DecodeFloat16(b)))
}

func ScalarCosineFloat16(a, b []byte) float32 {
	dot, na, nb := cosineF32(DecodeFloat16(a), DecodeFloat16(b))
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(1 - dot/(na*nb))
}

func ScalarNormFloat16(v []byte) float32 { return float32(normF32(DecodeFloat16(v))) }

func ScalarNormalizeFloat16(dst, src []byte) {
	vs := DecodeFloat16(src)
	n := normF32(vs)
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
	EncodeFloat16(dst, out)
}

// ScalarL1Uint8 and ScalarL2Uint8 treat the byte span as quantized scalar
// components (one component per byte), for pre-quantized element types.
func ScalarL1Uint8(a, b []byte) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return float32(sum)
}

func ScalarL2Uint8(a, b []byte) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}

// ScalarHammingUint8 treats the byte span as a packed bitset and counts
// differing bits.
func ScalarHammingUint8(a, b []byte) float32 {
	n := 0
	for i := range a {
		n += popcountBytes([]byte{a[i] ^ b[i]})
	}
	return float32(n)
}

// ScalarJaccardUint8 treats the byte span as a packed bitset. Returns 0
// when the union has zero popcount (spec §4.5's zero-norm rule extended to
// the zero-union edge case for set-overlap metrics).
func ScalarJaccardUint8(a, b []byte) float32 {
	inter, union := 0, 0
	for i := range a {
		inter += popcountBytes([]byte{a[i] & b[i]})
		union += popcountBytes([]byte{a[i] | b[i]})
	}
	if union == 0 {
		return 0
	}
	return float32(1 - float64(inter)/float64(union))
}

// sameBacking reports whether dst and src share the same underlying array,
// so ScalarNormalize{Float32,Float16} can skip a redundant self-copy on the
// zero-norm path when called in-place.
func sameBacking(dst, src []byte) bool {
	return len(dst) > 0 && len(src) > 0 && &dst[0] == &src[0]
}
