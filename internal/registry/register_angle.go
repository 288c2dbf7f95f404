package registry

import (
	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/kernel"
)

// registerAngle wires the angular-distance metric for float32.
func registerAngle(r *Registry) {
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricAngle, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarAngleFloat32, NormFn: kernel.ScalarNormFloat32,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricAngle, DataType: api.DataTypeFloat32, SimdLevel: api.SimdAVX2,
		DistanceFn: kernel.FastAngleFloat32, NormFn: kernel.FastNormFloat32,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricAngle, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNeon,
		DistanceFn: kernel.FastAngleFloat32, NormFn: kernel.FastNormFloat32,
	})
}
