package registry

import (
	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/kernel"
)

// registerL1 wires the L1 (Manhattan) metric for uint8 (quantized scalar
// components) and float32, scalar plus AVX2/Neon fast paths.
func registerL1(r *Registry) {
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricL1, DataType: api.DataTypeUint8, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarL1Uint8,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricL1, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarL1Float32, NormFn: kernel.ScalarNormFloat32,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricL1, DataType: api.DataTypeFloat32, SimdLevel: api.SimdAVX2,
		DistanceFn: kernel.FastL1Float32, NormFn: kernel.FastNormFloat32,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricL1, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNeon,
		DistanceFn: kernel.FastL1Float32, NormFn: kernel.FastNormFloat32,
	})
}
