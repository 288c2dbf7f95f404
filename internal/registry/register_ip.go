package registry

import (
	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/kernel"
)

// registerIP wires the (negated) inner-product metric for float16 and
// float32, the latter with AVX2/Neon fast paths.
func registerIP(r *Registry) {
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricIP, DataType: api.DataTypeFloat16, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarIPFloat16, NormFn: kernel.ScalarNormFloat16,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricIP, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarIPFloat32, NormFn: kernel.ScalarNormFloat32,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricIP, DataType: api.DataTypeFloat32, SimdLevel: api.SimdAVX2,
		DistanceFn: kernel.FastIPFloat32, NormFn: kernel.FastNormFloat32,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricIP, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNeon,
		DistanceFn: kernel.FastIPFloat32, NormFn: kernel.FastNormFloat32,
	})
}
