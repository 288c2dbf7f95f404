package batch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kumose/xann/api"
)

// Store is the growing sequence of Vector slabs a lid's bytes live in. The
// (batchIndex, slotIndex) for a lid is (lid/batchSize, lid%batchSize); a
// batch is materialized lazily the first time a lid that needs it is
// touched (spec §4.3, §9: "A valid lid may therefore lack backing storage
// until ensure_space runs").
type Store struct {
	batchSize      int
	vectorByteSize int
	batches        []*Vector
	logger         *zap.Logger
	name           string
}

// New creates an empty batch sequence. batchSize is the slot count per
// materialized Vector; vectorByteSize is the per-vector width each slab
// reserves (already aligned — spec §3).
func New(name string, batchSize, vectorByteSize int, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{name: name, batchSize: batchSize, vectorByteSize: vectorByteSize, logger: logger}
}

// EnsureSpace grows the batch sequence until lid has backing storage.
// No-op if it already does.
func (s *Store) EnsureSpace(lid api.LocalID) error {
	need := int(lid)/s.batchSize + 1
	for len(s.batches) < need {
		b, err := NewVector(s.vectorByteSize, s.batchSize)
		if err != nil {
			return err
		}
		s.batches = append(s.batches, b)
		s.logger.Info("vector batch materialized",
			zap.String("store", s.name), zap.Int("batch_index", len(s.batches)-1), zap.Int("batch_size", s.batchSize))
	}
	return nil
}

// Get returns the vectorByteSize-byte span for lid. Fails with
// KindOutOfRange if lid has no backing storage yet (spec §9: "Readers must
// treat an empty span from batch.at as OutOfRange").
func (s *Store) Get(lid api.LocalID) ([]byte, error) {
	bi, si := s.locate(lid)
	if bi >= len(s.batches) {
		return nil, api.NewError("Get", api.KindOutOfRange, fmt.Sprintf("lid=%d", lid))
	}
	span := s.batches[bi].At(si)
	if span == nil {
		return nil, api.NewError("Get", api.KindOutOfRange, fmt.Sprintf("lid=%d", lid))
	}
	return span, nil
}

// Set copies bytes into the slot for lid, growing the batch sequence first
// if needed.
func (s *Store) Set(lid api.LocalID, bytes []byte) error {
	if err := s.EnsureSpace(lid); err != nil {
		return err
	}
	bi, si := s.locate(lid)
	s.batches[bi].Set(si, bytes)
	return nil
}

// Clear zero-fills the slot for lid, if it has backing storage.
func (s *Store) Clear(lid api.LocalID) {
	bi, si := s.locate(lid)
	if bi >= len(s.batches) {
		return
	}
	s.batches[bi].Clear(si)
}

func (s *Store) locate(lid api.LocalID) (batchIndex, slotIndex int) {
	return int(lid) / s.batchSize, int(lid) % s.batchSize
}

// BatchCount returns how many batches have been materialized.
func (s *Store) BatchCount() int { return len(s.batches) }

// AllocatedBytes returns the total bytes reserved across every
// materialized batch, used not used.
func (s *Store) AllocatedBytes() int64 {
	return int64(len(s.batches)) * int64(s.batchSize) * int64(s.vectorByteSize)
}

// AllocatedVectors returns the total vector slots reserved across every
// materialized batch.
func (s *Store) AllocatedVectors() int64 {
	return int64(len(s.batches)) * int64(s.batchSize)
}
