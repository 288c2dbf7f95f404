package registry

import (
	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/kernel"
)

// registerNormalizedAngle wires normalized_angle: angular distance over
// pre-normalized vectors.
func registerNormalizedAngle(r *Registry) {
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricNormalizedAngle, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarNormalizedAngleFloat32, NormFn: kernel.ScalarNormFloat32,
		NormalizeFn: kernel.ScalarNormalizeFloat32, NeedNormalizeVector: true,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricNormalizedAngle, DataType: api.DataTypeFloat32, SimdLevel: api.SimdAVX2,
		DistanceFn: kernel.FastNormalizedAngleFloat32, NormFn: kernel.FastNormFloat32,
		NormalizeFn: kernel.FastNormalizeFloat32, NeedNormalizeVector: true,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricNormalizedAngle, DataType: api.DataTypeFloat32, SimdLevel: api.SimdNeon,
		DistanceFn: kernel.FastNormalizedAngleFloat32, NormFn: kernel.FastNormFloat32,
		NormalizeFn: kernel.FastNormalizeFloat32, NeedNormalizeVector: true,
	})
}
