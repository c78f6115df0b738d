package wasmhost

import (
	"encoding/binary"

	"github.com/wippyai/ad936x/internal/admalloc"
	"github.com/wippyai/ad936x/noos"
)

const (
	pageSize  = 65536
	cellBytes = 64
)

// layout is the host-owned region appended to guest memory at load:
// the parameter block, out-value cells, a FIR config slot, the errno
// cell, the allocator scratchpad and the heap.
type layout struct {
	params  uint32
	cells   uint32
	fir     uint32
	errno   uint32
	scratch uint32
	heap    uint32
	words   int
	end     uint32
}

func align8(n uint32) uint32 { return (n + 7) &^ 7 }

func planLayout(base uint32, heapWords int) layout {
	firSize := max(binary.Size(noos.RxFIRConfig{}), binary.Size(noos.TxFIRConfig{}))

	var l layout
	l.params = align8(base)
	l.cells = align8(l.params + uint32(binary.Size(noos.InitParam{})))
	l.fir = align8(l.cells + cellBytes)
	l.errno = align8(l.fir + uint32(firSize))
	l.scratch = l.errno + 8
	l.heap = l.scratch + 8
	l.words = heapWords
	l.end = l.heap + uint32(heapWords)*admalloc.WordSize
	return l
}

// pages is the number of pages to grow a memory of size bytes by so the
// layout fits.
func (l layout) pages(size uint32) uint32 {
	if l.end <= size {
		return 0
	}
	return (l.end - size + pageSize - 1) / pageSize
}

// cell returns the i-th 8-byte out-value cell.
func (l layout) cell(i int) uint32 {
	return l.cells + uint32(i)*8
}
