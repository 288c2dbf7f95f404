// Package simdlevel maps the host CPU's detected feature set to the
// closed api.SimdLevel enum the operator registry dispatches on, following
// wazero's internal/platform per-feature CpuFeatures.Has/HasExtra style of
// keeping capability detection behind a small queryable surface rather than
// scattering build tags through call sites.
package simdlevel

import (
	"github.com/klauspost/cpuid/v2"

	"github.com/kumose/xann/api"
)

// Detect returns the highest api.SimdLevel the running CPU supports, which
// may be a level (SSE4, AVX512) the built-in registry has no kernels for.
// It never returns a level the CPU lacks; callers still have to confirm the
// registry actually has an entry for it (spec §4.4: detection and
// availability are separate failures).
func Detect() api.SimdLevel {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F):
		return api.SimdAVX512
	case cpuid.CPU.Supports(cpuid.AVX2):
		return api.SimdAVX2
	case cpuid.CPU.Supports(cpuid.SSE4) || cpuid.CPU.Supports(cpuid.SSE42):
		return api.SimdSSE4
	case cpuid.CPU.Supports(cpuid.ASIMD):
		return api.SimdNeon
	default:
		return api.SimdNone
	}
}

// Supports reports whether the running CPU supports level at all (not
// whether the registry has kernels for it).
func Supports(level api.SimdLevel) bool {
	switch level {
	case api.SimdNone:
		return true
	case api.SimdSSE4:
		return cpuid.CPU.Supports(cpuid.SSE4) || cpuid.CPU.Supports(cpuid.SSE42)
	case api.SimdAVX2:
		return cpuid.CPU.Supports(cpuid.AVX2)
	case api.SimdAVX512:
		return cpuid.CPU.Supports(cpuid.AVX512F)
	case api.SimdNeon:
		return cpuid.CPU.Supports(cpuid.ASIMD)
	default:
		return false
	}
}
