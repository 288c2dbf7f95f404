package simdlevel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kumose/xann/api"
)

func TestDetectReturnsValidLevel(t *testing.T) {
	require.True(t, Detect().Valid())
}

func TestSupportsNoneIsAlwaysTrue(t *testing.T) {
	require.True(t, Supports(api.SimdNone))
}

func TestSupportsUnknownLevelIsFalse(t *testing.T) {
	require.False(t, Supports(api.SimdLevel(200)))
}

func TestDetectedLevelIsSelfConsistent(t *testing.T) {
	require.True(t, Supports(Detect()))
}
