package registry

import (
	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/kernel"
)

// registerHamming wires the Hamming metric over packed-bit uint8 vectors.
// Bit-packed payloads have no meaningful SIMD-width-dependent fast path in
// this module, so only SimdNone and SimdAVX2 are populated, leaving Neon
// and the scalar-only axes to exercise the registry's NotFound path in
// tests the way the factory would see an unported platform.
func registerHamming(r *Registry) {
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricHamming, DataType: api.DataTypeUint8, SimdLevel: api.SimdNone,
		DistanceFn: kernel.ScalarHammingUint8,
	})
	mustRegister(r, api.OperatorEntity{
		Metric: api.MetricHamming, DataType: api.DataTypeUint8, SimdLevel: api.SimdAVX2,
		DistanceFn: kernel.FastHammingUint8,
	})
}
