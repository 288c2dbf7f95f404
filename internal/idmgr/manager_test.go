package idmgr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kumose/xann/api"
)

func freshManager(t *testing.T, reserved, next api.LocalID) *Manager {
	t.Helper()
	m := New("test")
	require.NoError(t, m.Initialize(nil, reserved, next))
	return m
}

func TestInitialize_InvalidArgument(t *testing.T) {
	m := New("test")
	err := m.Initialize(nil, 5, 3)
	require.Error(t, err)
	var xerr *api.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, api.KindInvalidArgument, xerr.Kind)
}

func TestInitialize_Idempotent(t *testing.T) {
	m := New("test")
	require.NoError(t, m.Initialize(nil, 5, 5))
	lid, err := m.AllocID(100)
	require.NoError(t, err)
	require.Equal(t, api.LocalID(5), lid)

	// A second Initialize call must not reset state.
	require.NoError(t, m.Initialize(nil, 0, 0))
	require.Equal(t, api.LocalID(5), m.ReservedID())
	_, err = m.LocalID(100)
	require.NoError(t, err)
}

func TestAllocID_FreshStore(t *testing.T) {
	// Scenario 1 from spec §8.
	m := freshManager(t, 5, 5)

	lidA, err := m.AllocID(100)
	require.NoError(t, err)
	require.Equal(t, api.LocalID(5), lidA)

	lidB, err := m.AllocID(101)
	require.NoError(t, err)
	require.Equal(t, api.LocalID(6), lidB)

	require.Equal(t, api.LocalID(7), m.NextID())
	require.Len(t, m.ActiveIDs(0), 2)
}

func TestAllocID_DuplicateLabel(t *testing.T) {
	// Scenario 5 from spec §8.
	m := freshManager(t, 0, 0)
	_, err := m.AllocID(100)
	require.NoError(t, err)

	_, err = m.AllocID(100)
	require.Error(t, err)
	var xerr *api.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, api.KindAlreadyExists, xerr.Kind)
}

func TestFreeID_ReuseAndCompaction(t *testing.T) {
	// Scenario 2 from spec §8.
	m := freshManager(t, 5, 5)
	_, err := m.AllocID(100) // lid 5
	require.NoError(t, err)
	_, err = m.AllocID(101) // lid 6
	require.NoError(t, err)
	require.Equal(t, api.LocalID(7), m.NextID())

	m.FreeID(101) // frees lid 6, which is the tail -> compaction.
	require.Equal(t, api.LocalID(6), m.NextID())
	require.Equal(t, 0, m.FreeCount())

	lid, err := m.AllocID(102)
	require.NoError(t, err)
	require.Equal(t, api.LocalID(6), lid, "reused from next_id growth, not the free set")
}

func TestFreeID_HoleWithoutCompaction(t *testing.T) {
	// Scenario 3 from spec §8.
	m := freshManager(t, 5, 5)
	_, err := m.AllocID(100) // lid 5
	require.NoError(t, err)
	_, err = m.AllocID(101) // lid 6
	require.NoError(t, err)

	m.FreeID(100) // frees lid 5, lid 6 still in use -> no compaction.
	require.Equal(t, api.LocalID(7), m.NextID())
	require.Equal(t, 1, m.FreeCount())

	lid, err := m.AllocID(103)
	require.NoError(t, err)
	require.Equal(t, api.LocalID(5), lid, "smallest free lid reused first")
}

func TestFreeID_StatusClearedOnFree(t *testing.T) {
	// P5: status cleanup on free.
	m := freshManager(t, 0, 0)
	_, err := m.AllocID(200)
	require.NoError(t, err)
	m.SetLabelStatus(200, api.Tombstone)

	e, err := m.LabelEntity(200)
	require.NoError(t, err)
	require.True(t, e.Tombstoned())

	lid, _ := m.LocalID(200)
	m.FreeID(200)
	e2, err := m.LocalEntity(lid)
	require.NoError(t, err)
	require.Equal(t, api.Status(0), e2.Status)
}

func TestTombstoneThenStillReadable(t *testing.T) {
	// Scenario 4 from spec §8: tombstone is logical, not physical.
	m := freshManager(t, 0, 0)
	lid, err := m.AllocID(200)
	require.NoError(t, err)
	m.SetLabelStatus(200, api.Tombstone)

	e, err := m.LocalEntity(lid)
	require.NoError(t, err)
	require.Equal(t, api.Tombstone, e.Status)
	require.Equal(t, api.Label(200), e.Label)

	ids := m.ActiveIDs(api.Tombstone)
	require.Equal(t, []api.LocalID{lid}, ids)
}

func TestSetReservedID_DoesNotTouchPool(t *testing.T) {
	m := freshManager(t, 10, 10)
	m.SetReservedID(3, 999)

	lid, err := m.LocalID(999)
	require.NoError(t, err)
	require.Equal(t, api.LocalID(3), lid)

	// The pool slot itself is untouched (still the sentinel Initialize
	// padded the fresh pool with), only the label map gained the mapping.
	e, err := m.LocalEntity(3)
	require.NoError(t, err)
	require.True(t, e.Free())
}

func TestSetReservedID_PanicsOutsideReservedRange(t *testing.T) {
	m := freshManager(t, 3, 5)
	require.Panics(t, func() { m.SetReservedID(3, 1) })
}

func TestFreeLocalID_PanicsBelowReservedID(t *testing.T) {
	m := freshManager(t, 3, 5)
	require.Panics(t, func() { m.FreeLocalID(1) })
}

func TestFreeLocalID_NoopAboveCapacity(t *testing.T) {
	m := freshManager(t, 0, 0)
	require.NotPanics(t, func() { m.FreeLocalID(1_000_000) })
}

func TestAllocID_ResourceExhausted(t *testing.T) {
	// Initialize always pads an adopted pool to nextID+defaultGrowth
	// (here 0+256=256 slots), so a pool has to already be at that size for
	// AllocID to run out of room without growth enabled.
	pool := make([]api.LabelEntity, defaultGrowth)
	for i := range pool {
		pool[i] = api.LabelEntity{Label: api.SentinelLabel}
	}
	m := New("test")
	require.NoError(t, m.Initialize(pool, 0, 0))

	for i := 0; i < defaultGrowth; i++ {
		_, err := m.AllocID(api.Label(i + 1))
		require.NoError(t, err)
	}

	_, err := m.AllocID(api.Label(defaultGrowth + 1))
	require.Error(t, err)
	var xerr *api.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, api.KindResourceExhausted, xerr.Kind)
}

func TestAllocID_GrowsPoolUpToMaxCapacity(t *testing.T) {
	pool := make([]api.LabelEntity, defaultGrowth)
	for i := range pool {
		pool[i] = api.LabelEntity{Label: api.SentinelLabel}
	}
	m := New("test", WithMaxCapacity(defaultGrowth+2))
	require.NoError(t, m.Initialize(pool, 0, 0))

	// Consume the Initialize-time pad first.
	for i := 0; i < defaultGrowth; i++ {
		_, err := m.AllocID(api.Label(i + 1))
		require.NoError(t, err)
	}
	require.Equal(t, defaultGrowth, m.Capacity())

	// The next two allocations must come from growPool...
	_, err := m.AllocID(api.Label(defaultGrowth + 1))
	require.NoError(t, err)
	_, err = m.AllocID(api.Label(defaultGrowth + 2))
	require.NoError(t, err)
	require.Equal(t, defaultGrowth+2, m.Capacity())

	// ...and the one after that must hit maxCapacity.
	_, err = m.AllocID(api.Label(defaultGrowth + 3))
	require.Error(t, err)
	var xerr *api.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, api.KindResourceExhausted, xerr.Kind)
}

func TestHoleAndZombieRatios(t *testing.T) {
	m := freshManager(t, 0, 0)
	for _, l := range []api.Label{1, 2, 3, 4} {
		_, err := m.AllocID(l)
		require.NoError(t, err)
	}
	m.FreeID(2) // hole, not a trailing free -> no compaction (lid 3 still live).
	require.InDelta(t, 0.25, m.HoleRatio(), 1e-9)

	m.SetLabelStatus(1, api.Tombstone)
	require.InDelta(t, float64(1)/3, m.ZombieRatio(), 1e-9)
}

func TestUninitializedUseIsFatal(t *testing.T) {
	m := New("test")
	require.Panics(t, func() { _, _ = m.AllocID(1) })
}
