package registry

import (
	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/kernel"
)

// registerCosine wires the cosine-distance metric for float16 and float32.
func registerCosine(r *Registry) {
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricCosine, DataType: api.DataTypeFloat16, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarCosineFloat16, NormFn: kernel.ScalarNormFloat16,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricCosine, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarCosineFloat32, NormFn: kernel.ScalarNormFloat32,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricCosine, DataType: api.DataTypeFloat32, SimdLevel: api.SimdAVX2,
		DistanceFn: kernel.FastCosineFloat32, NormFn: kernel.FastNormFloat32,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricCosine, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNeon,
		DistanceFn: kernel.FastCosineFloat32, NormFn: kernel.FastNormFloat32,
	})
}
