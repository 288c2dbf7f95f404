// Package batch implements the fixed-capacity, 64-byte-aligned vector
// slabs (spec §4.2) and the growing sequence of them that backs the store
// (spec §4.3). It owns no notion of labels; it only ever speaks lid
// (really lid % batchSize, the slot index within a batch).
package batch

import (
	"fmt"
	"unsafe"

	"github.com/kumose/xann/api"
)

// alignedAlloc returns a byte slice of length n whose first byte sits at a
// 64-byte-aligned address. Go's allocator gives no alignment guarantee for
// an arbitrary-sized make([]byte, n), so the slab is over-allocated and
// sliced from the first aligned offset; the Go runtime's GC never moves
// heap objects, so the alignment holds for the slice's lifetime.
func alignedAlloc(n int) []byte {
	if n == 0 {
		return nil
	}
	buf := make([]byte, n+api.Alignment-1)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	off := int(api.AlignUp(int(addr)) - int(addr))
	return buf[off : off+n : off+n]
}

// Vector is a single fixed-size, 64-byte-aligned slab holding n vectors of
// vectorByteSize bytes each.
type Vector struct {
	vectorByteSize int
	n              int
	buf            []byte
}

// NewVector allocates a slab of exactly vectorByteSize*n bytes. Contents
// are undefined until Set is called (spec §4.2). Fails with
// KindUnavailable if the requested size cannot be allocated.
func NewVector(vectorByteSize, n int) (*Vector, error) {
	if vectorByteSize <= 0 || n < 0 {
		return nil, api.NewError("NewVector", api.KindInvalidArgument,
			fmt.Sprintf("vector_byte_size=%d n=%d", vectorByteSize, n))
	}
	size := vectorByteSize * n
	buf := alignedAlloc(size)
	if size != 0 && buf == nil {
		return nil, api.NewError("NewVector", api.KindUnavailable,
			fmt.Sprintf("failed to allocate %d bytes", size))
	}
	return &Vector{vectorByteSize: vectorByteSize, n: n, buf: buf}, nil
}

// Cap returns the number of vector slots this batch holds.
func (v *Vector) Cap() int { return v.n }

// At returns the vectorByteSize-byte window at slot i, or an empty span if
// i is out of range. Never panics.
func (v *Vector) At(i int) []byte {
	if i < 0 || i >= v.n {
		return nil
	}
	start := i * v.vectorByteSize
	return v.buf[start : start+v.vectorByteSize : start+v.vectorByteSize]
}

// Set copies vectorByteSize bytes from src into slot i. No-op if i is out
// of range. Panics if len(src) < vectorByteSize, matching the spec's "the
// caller is responsible for span length" contract.
func (v *Vector) Set(i int, src []byte) {
	if i < 0 || i >= v.n {
		return
	}
	if len(src) < v.vectorByteSize {
		panic(fmt.Sprintf("batch.Vector.Set: src has %d bytes, need %d", len(src), v.vectorByteSize))
	}
	copy(v.At(i), src)
}

// Clear zero-fills slot i. No-op if i is out of range.
func (v *Vector) Clear(i int) {
	dst := v.At(i)
	for j := range dst {
		dst[j] = 0
	}
}
