package api

// Label is an externally assigned opaque identifier, unique within a store.
type Label uint64

// LocalID is the internal dense index into the identifier pool and,
// derivatively, into the vector batch sequence.
type LocalID uint64

// SentinelLabel marks a pool slot as physically free.
const SentinelLabel Label = ^Label(0)

// Status is an opaque bitfield owned by the outer (index) layer. The core
// only reserves one bit of meaning for it.
type Status uint64

// Tombstone marks a slot as logically deleted while remaining physically
// allocated: the label and vector are still present, but the index layer
// should treat the entry as absent for query purposes.
const Tombstone Status = 1

// SnapshotID is the caller-supplied monotonic token a mutator stamps on the
// store; readers use it to detect concurrent state changes (spec §6's
// "mutation boundary").
type SnapshotID uint64

// LabelEntity is the (label, status) pair stored per physical pool slot.
type LabelEntity struct {
	Label  Label
	Status Status
}

// Free reports whether the slot this entity was read from is physically
// unused (spec §3: "label = SENTINEL marks the slot physically free").
func (e LabelEntity) Free() bool { return e.Label == SentinelLabel }

// Tombstoned reports whether the Tombstone bit is set.
func (e LabelEntity) Tombstoned() bool { return e.Status&Tombstone != 0 }
