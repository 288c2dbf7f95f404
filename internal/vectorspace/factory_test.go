package vectorspace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/registry"
)

func TestBuild_ScalarOnly(t *testing.T) {
	r := registry.Builtin(nil)
	vs, err := Build(r, 8, api.DataTypeFloat32, api.MetricL2, api.SimdNone)
	require.NoError(t, err)
	require.Equal(t, 32, vs.RawVectorByteSize)
	require.Equal(t, 64, vs.AlignedVectorByteSize)
	require.Equal(t, 16, vs.AlignedDim)
	require.Equal(t, "scalar", vs.ArchName)
	require.NotNil(t, vs.Fast.DistanceFn)
}

func TestBuild_RequestedSimdLevel(t *testing.T) {
	r := registry.Builtin(nil)
	vs, err := Build(r, 8, api.DataTypeFloat32, api.MetricL2, api.SimdAVX2)
	require.NoError(t, err)
	require.Equal(t, "avx2", vs.ArchName)
	require.NotNil(t, vs.Fast.DistanceFn)
}

func TestBuild_UnavailableSimdLevelFails(t *testing.T) {
	r := registry.Builtin(nil)
	_, err := Build(r, 8, api.DataTypeFloat32, api.MetricL2, api.SimdSSE4)
	require.Error(t, err)
	var xerr *api.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, api.KindUnavailable, xerr.Kind)
}

func TestBuild_UnknownKernelCombinationFails(t *testing.T) {
	r := registry.Builtin(nil)
	_, err := Build(r, 8, api.DataTypeFloat16, api.MetricHamming, api.SimdNone)
	require.Error(t, err)
}

func TestBuild_InvalidDim(t *testing.T) {
	r := registry.Builtin(nil)
	_, err := Build(r, 0, api.DataTypeFloat32, api.MetricL2, api.SimdNone)
	require.Error(t, err)
}

func TestBuild_NormalizedMetricCarriesFlag(t *testing.T) {
	r := registry.Builtin(nil)
	vs, err := Build(r, 8, api.DataTypeFloat32, api.MetricNormalizedCosine, api.SimdNone)
	require.NoError(t, err)
	require.True(t, vs.NeedNormalizeVector)
}
