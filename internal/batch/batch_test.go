package batch

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/kumose/xann/api"
)

func TestVector_AlignmentAndRoundTrip(t *testing.T) {
	v, err := NewVector(64, 4)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		addr := uintptr(unsafe.Pointer(&v.At(i)[0]))
		require.Zero(t, addr%api.Alignment, "slot %d not 64-byte aligned", i)
	}

	payload := make([]byte, 64)
	payload[0] = 0xAB
	v.Set(2, payload)
	require.Equal(t, payload, v.At(2))
}

func TestVector_OutOfRangeIsEmptySpanNotPanic(t *testing.T) {
	v, err := NewVector(64, 2)
	require.NoError(t, err)
	require.Nil(t, v.At(2))
	require.NotPanics(t, func() { v.Set(5, make([]byte, 64)) })
	require.NotPanics(t, func() { v.Clear(5) })
}

func TestStore_EnsureSpaceGrowsLazily(t *testing.T) {
	s := New("test", 4, 64, nil)
	require.Equal(t, 0, s.BatchCount())

	require.NoError(t, s.Set(0, make([]byte, 64)))
	require.Equal(t, 1, s.BatchCount())

	require.NoError(t, s.Set(9, make([]byte, 64)))
	require.Equal(t, 3, s.BatchCount())
}

func TestStore_GetUnmaterializedIsOutOfRange(t *testing.T) {
	s := New("test", 4, 64, nil)
	_, err := s.Get(0)
	require.Error(t, err)
	var xerr *api.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, api.KindOutOfRange, xerr.Kind)
}

func TestStore_RoundTrip(t *testing.T) {
	s := New("test", 4, 64, nil)
	payload := make([]byte, 64)
	payload[3] = 7
	require.NoError(t, s.Set(6, payload))

	got, err := s.Get(6)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}
