package registry

import (
	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/kernel"
)

// registerJaccard wires the Jaccard metric over packed-bit uint8 vectors.
func registerJaccard(r *Registry) {
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricJaccard, DataType: api.DataTypeUint8, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarJaccardUint8,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricJaccard, DataType: api.DataTypeUint8, SimdLevel: api.SimdAVX2,
		DistanceFn: kernel.FastJaccardUint8,
	})
}
