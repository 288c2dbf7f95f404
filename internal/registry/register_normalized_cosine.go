package registry

import (
	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/kernel"
)

// registerNormalizedCosine wires normalized_cosine: cosine distance over
// pre-normalized vectors.
func registerNormalizedCosine(r *Registry) {
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricNormalizedCosine, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarNormalizedCosineFloat32, NormFn: kernel.ScalarNormFloat32,
		NormalizeFn: kernel.ScalarNormalizeFloat32, NeedNormalizeVector: true,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricNormalizedCosine, DataType: api.DataTypeFloat32, SimdLevel: api.SimdAVX2,
		DistanceFn: kernel.FastNormalizedCosineFloat32, NormFn: kernel.FastNormFloat32,
		NormalizeFn: kernel.FastNormalizeFloat32, NeedNormalizeVector: true,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricNormalizedCosine, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNeon,
		DistanceFn: kernel.FastNormalizedCosineFloat32, NormFn: kernel.FastNormFloat32,
		NormalizeFn: kernel.FastNormalizeFloat32, NeedNormalizeVector: true,
	})
}
