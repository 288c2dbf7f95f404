// Package vectorspace builds the immutable api.VectorSpace descriptor a
// store is constructed against (spec §4.4, §3): it resolves both the
// scalar reference kernel and the requested fast-path kernel from the
// operator registry and computes the aligned/raw byte geometry every other
// component reads off of.
package vectorspace

import (
	"fmt"

	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/registry"
)

// Build resolves (metric, dtype) against SimdNone for the scalar reference
// kernel and against simd for the requested fast path, then computes the
// geometry fields. Fails with KindUnavailable if either lookup misses —
// the scalar entry is mandatory infrastructure (spec §4.4: "every vector
// space must have a working SimdNone fallback"), the requested one is
// whatever the caller asked for.
func Build(r *registry.Registry, dim int, dtype api.DataType, metric api.Metric, simd api.SimdLevel) (*api.VectorSpace, error) {
	if dim <= 0 {
		return nil, api.NewError("Build", api.KindInvalidArgument, fmt.Sprintf("dim=%d", dim))
	}
	if !dtype.Valid() || !metric.Valid() || !simd.Valid() {
		return nil, api.NewError("Build", api.KindInvalidArgument,
			fmt.Sprintf("dtype=%v metric=%v simd=%v", dtype, metric, simd))
	}

	scalar, err := r.Lookup(metric, dtype, api.SimdNone)
	if err != nil {
		return nil, api.WrapError("Build", api.KindUnavailable,
			fmt.Sprintf("no scalar kernel for metric=%v dtype=%v", metric, dtype), err)
	}

	fast := scalar
	archName := "scalar"
	if simd != api.SimdNone {
		f, err := r.Lookup(metric, dtype, simd)
		if err != nil {
			return nil, api.WrapError("Build", api.KindUnavailable,
				fmt.Sprintf("no %v kernel for metric=%v dtype=%v", simd, metric, dtype), err)
		}
		fast = f
		archName = simd.String()
	}

	raw := dim * dtype.ElementSize()
	aligned := api.AlignUp(raw)

	return &api.VectorSpace{
		Dim:                   dim,
		DataType:              dtype,
		Metric:                metric,
		ElementSize:           dtype.ElementSize(),
		RawVectorByteSize:     raw,
		AlignedVectorByteSize: aligned,
		AlignedDim:            aligned / dtype.ElementSize(),
		NeedNormalizeVector:   scalar.NeedNormalizeVector,
		Fast:                  fast,
		Scalar:                scalar,
		ArchName:              archName,
	}, nil
}
