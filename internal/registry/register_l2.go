package registry

import (
	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/kernel"
)

// registerL2 wires the L2 (Euclidean) metric across all three data types;
// float32 additionally gets AVX2/Neon fast paths.
func registerL2(r *Registry) {
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricL2, DataType: api.DataTypeUint8, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarL2Uint8,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricL2, DataType: api.DataTypeFloat16, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarL2Float16, NormFn: kernel.ScalarNormFloat16,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricL2, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarL2Float32, NormFn: kernel.ScalarNormFloat32,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricL2, DataType: api.DataTypeFloat32, SimdLevel: api.SimdAVX2,
		DistanceFn: kernel.FastL2Float32, NormFn: kernel.FastNormFloat32,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricL2, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNeon,
		DistanceFn: kernel.FastL2Float32, NormFn: kernel.FastNormFloat32,
	})
}
