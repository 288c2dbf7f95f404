package idmgr

import (
	"github.com/google/btree"

	"github.com/kumose/xann/api"
)

// freeSet is the ordered set of physically-free local ids (spec §3,
// "Free-set ordering"). Ordering it lets allocation always return the
// smallest free lid in O(log n), maximizing low-address reuse and making
// the trailing-compactness invariant fire more often. Backed by
// google/btree, the ordered-set library already present in the retrieval
// pack's vector-storage-adjacent members (shibudb-server, memory-storage).
type freeSet struct {
	t *btree.BTreeG[api.LocalID]
}

func newFreeSet() *freeSet {
	return &freeSet{t: btree.NewG(32, func(a, b api.LocalID) bool { return a < b })}
}

func (s *freeSet) Insert(lid api.LocalID) { s.t.ReplaceOrInsert(lid) }

func (s *freeSet) Remove(lid api.LocalID) { s.t.Delete(lid) }

func (s *freeSet) Has(lid api.LocalID) bool { return s.t.Has(lid) }

func (s *freeSet) Len() int { return s.t.Len() }

// PopMin removes and returns the smallest member. The second return is
// false if the set is empty.
func (s *freeSet) PopMin() (api.LocalID, bool) {
	lid, ok := s.t.Min()
	if !ok {
		return 0, false
	}
	s.t.Delete(lid)
	return lid, true
}

// Ascend calls fn for every member in ascending order until fn returns
// false.
func (s *freeSet) Ascend(fn func(api.LocalID) bool) {
	s.t.Ascend(func(lid api.LocalID) bool { return fn(lid) })
}
