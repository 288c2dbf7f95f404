// Package xann is the in-memory storage substrate for a vector-search
// index: the label<->local-id bijection, the aligned vector batch
// sequence, and the operator registry, composed behind a single facade a
// higher-level index layer drives (spec §4.3, §4.6). It persists nothing
// and speaks no wire protocol; a separate serializer friend owns that.
package xann

import (
	"sync"

	"go.uber.org/zap"

	"github.com/kumose/xann/api"
	"github.com/kumose/xann/internal/batch"
	"github.com/kumose/xann/internal/idmgr"
	"github.com/kumose/xann/internal/registry"
	"github.com/kumose/xann/internal/vectorspace"
)

// Store is the memory store facade: one identifier manager plus one batch
// sequence, resolved against one vector space, governed by a single
// multi-reader/single-writer lock (spec §5). The zero value is not usable;
// build one with NewStore.
type Store struct {
	mu sync.RWMutex

	cfg StoreConfig
	vs  *api.VectorSpace
	ids *idmgr.Manager
	vec *batch.Store

	snapshotID api.SnapshotID
	logger     *zap.Logger
}

// NewStore builds a Store from cfg: resolves the operator registry entries
// for (metric, element_type, simd_level), allocates the identifier manager
// and an empty batch sequence, and initializes both to an empty store
// starting at cfg's reserved_id.
func NewStore(cfg StoreConfig) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	reg := registry.Builtin(logger)
	vs, err := vectorspace.Build(reg, cfg.dim, cfg.elementType, cfg.metric, cfg.simdLevel)
	if err != nil {
		return nil, err
	}

	var idOpts []idmgr.Option
	idOpts = append(idOpts, idmgr.WithLogger(logger))
	if cfg.registerer != nil {
		idOpts = append(idOpts, idmgr.WithMetrics(cfg.registerer))
	}
	// One slot of headroom past max_elements so alloc_id can still hand back
	// the boundary lid instead of raising KindResourceExhausted itself; Add
	// below is what turns that boundary lid into KindOutOfRange.
	idOpts = append(idOpts, idmgr.WithMaxCapacity(cfg.maxElements+1))

	ids := idmgr.New(cfg.name, idOpts...)
	if err := ids.Initialize(nil, cfg.reserved, cfg.reserved); err != nil {
		return nil, err
	}

	vec := batch.New(cfg.name, cfg.batchSize, vs.VectorByteSize(), logger)

	return &Store{cfg: cfg, vs: vs, ids: ids, vec: vec, logger: logger}, nil
}

// VectorSpace returns the immutable descriptor this store was built
// against.
func (s *Store) VectorSpace() *api.VectorSpace { return s.vs }

// Lock/Unlock/RLock/RUnlock expose the store's single multi-reader/
// single-writer lock so the index layer can extend critical sections over
// several related operations (spec §5).
func (s *Store) Lock()    { s.mu.Lock() }
func (s *Store) Unlock()  { s.mu.Unlock() }
func (s *Store) RLock()   { s.mu.RLock() }
func (s *Store) RUnlock() { s.mu.RUnlock() }

// Add allocates a lid for label, grows the batch sequence to cover it, and
// copies bytes into the slot. Fails with OutOfRange if the assigned lid
// would reach cfg.max_elements, AlreadyExists if label is already mapped,
// or Unavailable if batch growth fails. Stamps snapshotID last, on success
// only (spec §5's ordering guarantee).
func (s *Store) Add(snapshotID api.SnapshotID, label api.Label, bytes []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lid, err := s.ids.AllocID(label)
	if err != nil {
		return err
	}
	if int(lid) >= s.cfg.maxElements {
		s.ids.FreeLocalID(lid)
		return api.NewError("Add", api.KindOutOfRange, "lid reached max_elements")
	}
	if err := s.vec.Set(lid, bytes); err != nil {
		s.ids.FreeLocalID(lid)
		return err
	}
	s.snapshotID = snapshotID
	return nil
}

// Set overwrites the vector stored for an existing label. Fails with
// NotFound if label is unmapped.
func (s *Store) Set(snapshotID api.SnapshotID, label api.Label, bytes []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lid, err := s.ids.LocalID(label)
	if err != nil {
		return err
	}
	if err := s.vec.Set(lid, bytes); err != nil {
		return err
	}
	s.snapshotID = snapshotID
	return nil
}

// RemoveByLabel frees the lid mapped to label and clears its vector slot.
// Fails with NotFound if label is unmapped.
func (s *Store) RemoveByLabel(snapshotID api.SnapshotID, label api.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lid, err := s.ids.LocalID(label)
	if err != nil {
		return err
	}
	s.ids.FreeID(label)
	s.vec.Clear(lid)
	s.snapshotID = snapshotID
	return nil
}

// RemoveByID frees lid directly, removing whatever label maps to it.
func (s *Store) RemoveByID(snapshotID api.SnapshotID, lid api.LocalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids.FreeLocalID(lid)
	s.vec.Clear(lid)
	s.snapshotID = snapshotID
	return nil
}

// TombstoneByLabel marks label's slot TOMBSTONE without freeing its lid,
// preserving any graph edges that may still reference it.
func (s *Store) TombstoneByLabel(snapshotID api.SnapshotID, label api.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ids.LocalID(label); err != nil {
		return err
	}
	s.ids.SetLabelStatus(label, api.Tombstone)
	s.snapshotID = snapshotID
	return nil
}

// TombstoneByID marks lid's slot TOMBSTONE without freeing it.
func (s *Store) TombstoneByID(snapshotID api.SnapshotID, lid api.LocalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ids.LocalEntity(lid); err != nil {
		return err
	}
	s.ids.SetLocalIDStatus(lid, api.Tombstone)
	s.snapshotID = snapshotID
	return nil
}

// GetVectorByLabel returns the byte span stored for label.
func (s *Store) GetVectorByLabel(label api.Label) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lid, err := s.ids.LocalID(label)
	if err != nil {
		return nil, err
	}
	return s.vec.Get(lid)
}

// GetVectorByID returns the byte span stored at lid.
func (s *Store) GetVectorByID(lid api.LocalID) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vec.Get(lid)
}

// Size returns the number of in-use lids in [reserved_id, next_id).
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	span := int(s.ids.NextID() - s.ids.ReservedID())
	return span - s.ids.FreeCount()
}

// BytesSize returns the total bytes consumed by every in-use vector
// (size() * vector_byte_size).
func (s *Store) BytesSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	span := int(s.ids.NextID() - s.ids.ReservedID())
	inUse := span - s.ids.FreeCount()
	return int64(inUse) * int64(s.vs.AlignedVectorByteSize)
}

// AllocatedBytes returns the total bytes reserved across every
// materialized batch.
func (s *Store) AllocatedBytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vec.AllocatedBytes()
}

// FreeBytes returns the bytes reserved for physically-free lids.
func (s *Store) FreeBytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(s.ids.FreeCount()) * int64(s.vs.AlignedVectorByteSize)
}

// AllocatedVectorSize returns the total vector slots reserved across every
// materialized batch.
func (s *Store) AllocatedVectorSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vec.AllocatedVectors()
}

// FreeVectorSize returns the number of physically-free lids.
func (s *Store) FreeVectorSize() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(s.ids.FreeCount())
}

// Tombstones returns the number of in-use lids carrying the TOMBSTONE bit.
func (s *Store) Tombstones() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids.ActiveIDs(api.Tombstone))
}

// TombstoneLocalIDs returns every tombstoned lid in [reserved_id, next_id).
func (s *Store) TombstoneLocalIDs() []api.LocalID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids.ActiveIDs(api.Tombstone)
}

// TombstoneLabels returns the label of every tombstoned lid.
func (s *Store) TombstoneLabels() []api.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []api.Label
	s.ids.Walk(func(lid api.LocalID, e api.LabelEntity) bool {
		if !e.Free() && e.Tombstoned() {
			out = append(out, e.Label)
		}
		return true
	})
	return out
}

// SnapshotID returns the most recently stamped snapshot id.
func (s *Store) SnapshotID() api.SnapshotID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotID
}

// IDs walks every lid in [reserved_id, next_id), invoking fn until it
// returns false. This is the index-layer boundary's iteration primitive
// (spec §6); callers that need a stable view across the walk should hold
// RLock for its duration.
func (s *Store) IDs(fn func(api.LocalID, api.LabelEntity) bool) {
	s.ids.Walk(fn)
}

// HoleRatio and ZombieRatio surface the identifier manager's control-law
// ratios directly, for callers deciding whether to request a rebuild.
func (s *Store) HoleRatio() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids.HoleRatio()
}

func (s *Store) ZombieRatio() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids.ZombieRatio()
}

// IsRebuildAdvised reports whether either control-law ratio has crossed
// its configured threshold. Purely advisory: the store never rebuilds
// itself (spec §5's hot-swap note).
func (s *Store) IsRebuildAdvised() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids.HoleRatio() >= s.cfg.thresholds.HoleRatio || s.ids.ZombieRatio() >= s.cfg.thresholds.ZombieRatio
}
