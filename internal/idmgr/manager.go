// Package idmgr implements the label<->local-id bijection described in
// spec §4.1: reserved-range locking, free-list reuse with smallest-first
// allocation, trailing compaction, and the logical tombstone layer. It is
// the densest of the three core components and intentionally owns no I/O
// and no knowledge of vector bytes.
package idmgr

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kumose/xann/api"
)

// defaultGrowth is the minimum number of extra slots appended to an adopted
// pool beyond nextID on initialize (spec §4.1).
const defaultGrowth = 256

// Manager is the label<->lid bijection. The zero value is not usable; build
// one with New and call Initialize exactly once before any other method.
type Manager struct {
	name   string
	logger *zap.Logger
	stats  *metrics

	initialized bool
	pool        []api.LabelEntity
	labelMap    map[api.Label]api.LocalID
	free        *freeSet
	reservedID  api.LocalID
	nextID      api.LocalID

	// maxCapacity bounds how far AllocID may grow the pool past its
	// Initialize-time size. 0 (the default) permits no growth beyond the
	// one-time defaultGrowth pad applied in Initialize.
	maxCapacity int
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithLogger attaches a zap logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMetrics registers gauges for the hole and zombie ratios against reg.
// A nil reg (the default) disables metrics entirely.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(m *Manager) { m.stats = newMetrics(reg) }
}

// WithMaxCapacity lets AllocID grow the pool in defaultGrowth-sized chunks,
// beyond the one-time Initialize pad, up to n total slots. Without this
// option AllocID returns KindResourceExhausted as soon as the
// Initialize-time pad is consumed; callers that expect next_id to reach
// values well past that pad (e.g. a configured max_elements) must set this
// to at least that ceiling.
func WithMaxCapacity(n int) Option {
	return func(m *Manager) { m.maxCapacity = n }
}

// New builds an uninitialized Manager named name (used only as a metrics
// label and in log fields).
func New(name string, opts ...Option) *Manager {
	m := &Manager{name: name, logger: zap.NewNop(), labelMap: map[api.Label]api.LocalID{}, free: newFreeSet()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Initialize adopts pool (or a fresh empty pool if nil), grows it to at
// least nextID+defaultGrowth slots, and scans [reservedID, nextID) to
// populate the free set and label map. Idempotent: calls after the first
// successful one are no-ops. Fails with KindInvalidArgument iff
// reservedID > nextID.
func (m *Manager) Initialize(pool []api.LabelEntity, reservedID, nextID api.LocalID) error {
	if m.initialized {
		return nil
	}
	if reservedID > nextID {
		return api.NewError("Initialize", api.KindInvalidArgument,
			fmt.Sprintf("reserved_id=%d > next_id=%d", reservedID, nextID))
	}

	if pool == nil {
		pool = make([]api.LabelEntity, 0, int(nextID)+defaultGrowth)
	}
	target := int(nextID) + defaultGrowth
	for len(pool) < target {
		pool = append(pool, api.LabelEntity{Label: api.SentinelLabel})
	}

	m.pool = pool
	m.reservedID = reservedID
	m.nextID = nextID

	for lid := reservedID; lid < nextID; lid++ {
		e := m.pool[lid]
		if e.Free() {
			m.free.Insert(lid)
		} else {
			m.labelMap[e.Label] = lid
		}
	}

	m.initialized = true
	m.logger.Debug("idmgr initialized",
		zap.String("store", m.name), zap.Uint64("reserved_id", uint64(reservedID)),
		zap.Uint64("next_id", uint64(nextID)), zap.Int("capacity", len(pool)))
	m.observe()
	return nil
}

// growPool appends up to defaultGrowth more sentinel slots, never exceeding
// maxCapacity. Reports whether the pool grew by at least one slot.
func (m *Manager) growPool() bool {
	if len(m.pool) >= m.maxCapacity {
		return false
	}
	grow := defaultGrowth
	if remaining := m.maxCapacity - len(m.pool); grow > remaining {
		grow = remaining
	}
	for i := 0; i < grow; i++ {
		m.pool = append(m.pool, api.LabelEntity{Label: api.SentinelLabel})
	}
	m.logger.Debug("idmgr pool grown",
		zap.String("store", m.name), zap.Int("capacity", len(m.pool)))
	return true
}

func (m *Manager) mustInit(op string) {
	if !m.initialized {
		panic(api.NewError(op, api.KindFailedPrecondition, "identifier manager used before Initialize"))
	}
}

// AllocID assigns the smallest available lid to label. Fails with
// KindAlreadyExists iff label is already mapped, with KindResourceExhausted
// iff there is no free lid, nextID has reached the pool's capacity, and
// growPool cannot extend it further (maxCapacity unset or already reached).
func (m *Manager) AllocID(label api.Label) (api.LocalID, error) {
	m.mustInit("AllocID")
	if _, exists := m.labelMap[label]; exists {
		return 0, api.NewError("AllocID", api.KindAlreadyExists, fmt.Sprintf("label=%d", label))
	}

	var lid api.LocalID
	if freed, ok := m.free.PopMin(); ok {
		lid = freed
	} else if int(m.nextID) < len(m.pool) {
		lid = m.nextID
		m.nextID++
	} else if m.growPool() {
		lid = m.nextID
		m.nextID++
	} else {
		m.logger.Warn("alloc_id resource exhausted", zap.String("store", m.name), zap.Uint64("label", uint64(label)))
		return 0, api.NewError("AllocID", api.KindResourceExhausted, fmt.Sprintf("label=%d capacity=%d", label, len(m.pool)))
	}

	m.labelMap[label] = lid
	m.pool[lid] = api.LabelEntity{Label: label, Status: 0}
	m.observe()
	return lid, nil
}

// FreeID releases the lid mapped to label, if any. No-op if label is
// absent. Applies trailing compaction afterward (spec §4.1, §9).
func (m *Manager) FreeID(label api.Label) {
	m.mustInit("FreeID")
	lid, ok := m.labelMap[label]
	if !ok {
		return
	}
	m.freeLocked(label, lid)
}

// FreeLocalID releases lid, removing whatever label (if any) maps to it.
// No-op if lid >= capacity. A lid < reservedID is a reserved-range
// violation and is treated as fatal per spec §9's open question: "the
// source allows free_local_id(lid) where lid < reserved_id ... treat as
// undefined and assert."
func (m *Manager) FreeLocalID(lid api.LocalID) {
	m.mustInit("FreeLocalID")
	if int(lid) >= len(m.pool) {
		return
	}
	if lid < m.reservedID {
		panic(api.NewError("FreeLocalID", api.KindFailedPrecondition,
			fmt.Sprintf("lid=%d is in the reserved range [0,%d)", lid, m.reservedID)))
	}
	if lid >= m.nextID {
		// Pre-reserved backing storage: already free, not tracked.
		return
	}
	e := m.pool[lid]
	m.freeLocked(e.Label, lid)
}

// freeLocked performs the shared free + compaction sequence. label may be
// api.SentinelLabel if the slot was already free (label map already lacks
// an entry for it), in which case the labelMap delete is a no-op.
func (m *Manager) freeLocked(label api.Label, lid api.LocalID) {
	delete(m.labelMap, label)
	m.pool[lid] = api.LabelEntity{Label: api.SentinelLabel, Status: 0}
	m.free.Insert(lid)

	for m.nextID > m.reservedID && m.free.Has(m.nextID-1) {
		m.free.Remove(m.nextID - 1)
		m.nextID--
	}
	m.observe()
}

// SetReservedID installs label at lid within the reserved range. This is
// the only path that mutates [0, reservedID): the pool is left untouched,
// only the label map is updated (spec §9). Panics if lid is not below
// reservedID.
func (m *Manager) SetReservedID(lid api.LocalID, label api.Label) {
	m.mustInit("SetReservedID")
	if lid >= m.reservedID {
		panic(api.NewError("SetReservedID", api.KindFailedPrecondition,
			fmt.Sprintf("lid=%d is not below reserved_id=%d", lid, m.reservedID)))
	}
	m.labelMap[label] = lid
}

// LocalID looks up the lid mapped to label. Fails with KindNotFound iff
// absent.
func (m *Manager) LocalID(label api.Label) (api.LocalID, error) {
	m.mustInit("LocalID")
	lid, ok := m.labelMap[label]
	if !ok {
		return 0, api.NewError("LocalID", api.KindNotFound, fmt.Sprintf("label=%d", label))
	}
	return lid, nil
}

// LabelEntity returns the (label, status) pair mapped to label.
func (m *Manager) LabelEntity(label api.Label) (api.LabelEntity, error) {
	m.mustInit("LabelEntity")
	lid, ok := m.labelMap[label]
	if !ok {
		return api.LabelEntity{}, api.NewError("LabelEntity", api.KindNotFound, fmt.Sprintf("label=%d", label))
	}
	return m.pool[lid], nil
}

// LocalEntity returns the (label, status) pair stored at lid. Fails with
// KindNotFound iff lid is out of the managed pool's range.
func (m *Manager) LocalEntity(lid api.LocalID) (api.LabelEntity, error) {
	m.mustInit("LocalEntity")
	if int(lid) >= len(m.pool) {
		return api.LabelEntity{}, api.NewError("LocalEntity", api.KindNotFound, fmt.Sprintf("lid=%d", lid))
	}
	return m.pool[lid], nil
}

// SetLabelStatus overwrites the status field for label. No-op if absent.
func (m *Manager) SetLabelStatus(label api.Label, s api.Status) {
	m.mustInit("SetLabelStatus")
	lid, ok := m.labelMap[label]
	if !ok {
		return
	}
	m.pool[lid].Status = s
}

// SetLocalIDStatus overwrites the status field at lid. No-op if lid is out
// of range.
func (m *Manager) SetLocalIDStatus(lid api.LocalID, s api.Status) {
	m.mustInit("SetLocalIDStatus")
	if int(lid) >= len(m.pool) {
		return
	}
	m.pool[lid].Status = s
}

// NextID returns the current next_id watermark.
func (m *Manager) NextID() api.LocalID { return m.nextID }

// ReservedID returns the reserved_id watermark.
func (m *Manager) ReservedID() api.LocalID { return m.reservedID }

// Capacity returns the length of the backing pool.
func (m *Manager) Capacity() int { return len(m.pool) }

// FreeCount returns the number of physically-free lids in the active range.
func (m *Manager) FreeCount() int { return m.free.Len() }

// Pool returns a read-only view of the backing pool. Intended for the
// persistence boundary (spec §6): a serializer may read this directly to
// snapshot state.
func (m *Manager) Pool() []api.LabelEntity { return m.pool }

// Walk calls fn for every lid in [reservedID, nextID) until fn returns
// false. This is the index-layer boundary's iteration primitive (spec §6).
func (m *Manager) Walk(fn func(api.LocalID, api.LabelEntity) bool) {
	for lid := m.reservedID; lid < m.nextID; lid++ {
		if !fn(lid, m.pool[lid]) {
			return
		}
	}
}

// ActiveIDs returns every in-use lid in [reservedID, nextID) whose status,
// ANDed with statusMask, is nonzero. Pass 0 to list every in-use lid
// regardless of status.
func (m *Manager) ActiveIDs(statusMask api.Status) []api.LocalID {
	var out []api.LocalID
	m.Walk(func(lid api.LocalID, e api.LabelEntity) bool {
		if e.Free() {
			return true
		}
		if statusMask == 0 || e.Status&statusMask != 0 {
			out = append(out, lid)
		}
		return true
	})
	return out
}

// HoleRatio is free_ids / (next_id - reserved_id): the physical-hole
// control law from spec §4.1. Returns 0 if the active range is empty.
func (m *Manager) HoleRatio() float64 {
	span := int(m.nextID - m.reservedID)
	if span <= 0 {
		return 0
	}
	return float64(m.free.Len()) / float64(span)
}

// ZombieRatio is count(status==Tombstone)/count(label != SENTINEL) over
// the active range: the logical-zombie control law from spec §4.1. Returns
// 0 if nothing is in use.
func (m *Manager) ZombieRatio() float64 {
	var inUse, tombstoned int
	m.Walk(func(_ api.LocalID, e api.LabelEntity) bool {
		if !e.Free() {
			inUse++
			if e.Tombstoned() {
				tombstoned++
			}
		}
		return true
	})
	if inUse == 0 {
		return 0
	}
	return float64(tombstoned) / float64(inUse)
}

func (m *Manager) observe() {
	if m.stats == nil {
		return
	}
	m.stats.observe(m.name, m.HoleRatio(), m.ZombieRatio(), m.free.Len(), int(m.nextID))
}
