package registry

import (
	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/kernel"
)

// registerNormalizedL2 wires normalized_l2: L2 distance over vectors the
// factory has already run through NormalizeFn (spec §4.5). DistanceFn is
// the plain L2 reduction since pre-normalization is what makes it
// equivalent to a cosine-flavored distance.
func registerNormalizedL2(r *Registry) {
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricNormalizedL2, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarNormalizedL2Float32, NormFn: kernel.ScalarNormFloat32,
		NormalizeFn: kernel.ScalarNormalizeFloat32, NeedNormalizeVector: true,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricNormalizedL2, DataType: api.DataTypeFloat32, SimdLevel: api.SimdAVX2,
		DistanceFn: kernel.FastNormalizedL2Float32, NormFn: kernel.FastNormFloat32,
		NormalizeFn: kernel.FastNormalizeFloat32, NeedNormalizeVector: true,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricNormalizedL2, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNeon,
		DistanceFn: kernel.FastNormalizedL2Float32, NormFn: kernel.FastNormFloat32,
		NormalizeFn: kernel.FastNormalizeFloat32, NeedNormalizeVector: true,
	})
}
