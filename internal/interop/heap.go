package interop

import (
	"unsafe"

	"github.com/wippyai/ad936x/internal/admalloc"
)

// heap is the driver heap: a caller-owned word buffer plus the 8-byte
// scratchpad, managed by one arena.
var heap struct {
	words   []uint32
	scratch [2]uint32
	arena   admalloc.Arena
}

// goMemory resolves arena addresses back to Go pointers by indexing the
// installed buffers, so no pointer is ever rebuilt from an integer.
type goMemory struct{}

func (goMemory) Zero(addr admalloc.Addr, n uintptr) {
	clear(unsafe.Slice((*byte)(pointerTo(addr)), n))
}

func scratchAddr() admalloc.Addr {
	return admalloc.Addr(uintptr(unsafe.Pointer(&heap.scratch)))
}

func baseAddr() admalloc.Addr {
	return admalloc.Addr(uintptr(unsafe.Pointer(unsafe.SliceData(heap.words))))
}

func pointerTo(addr admalloc.Addr) unsafe.Pointer {
	if addr == scratchAddr() {
		return unsafe.Pointer(&heap.scratch)
	}
	off := uintptr(addr-baseAddr()) / admalloc.WordSize
	if off == uintptr(len(heap.words)) {
		// zero-byte block at the very end of the heap
		return unsafe.Pointer(unsafe.SliceData(heap.words[off:]))
	}
	return unsafe.Pointer(&heap.words[off])
}

// initHeap points the arena at words. The full capacity of the slice is
// used, so both make([]uint32, n) and make([]uint32, 0, n) give n words.
func initHeap(words []uint32) {
	heap.words = words[:cap(words)]
	heap.scratch = [2]uint32{}
	heap.arena.Init(baseAddr(), len(heap.words), scratchAddr(), goMemory{})
}

func releaseHeap() {
	heap.arena.Release()
	heap.words = nil
}

// Malloc is admalloc.
func Malloc(size uintptr) unsafe.Pointer {
	return pointerTo(heap.arena.Alloc(size))
}

// Calloc is adcalloc.
func Calloc(nmemb, size uintptr) unsafe.Pointer {
	return pointerTo(heap.arena.Calloc(nmemb, size))
}

// Free is adfree.
func Free(ptr unsafe.Pointer) {
	heap.arena.Free(admalloc.Addr(uintptr(ptr)))
}

// HeapState reports the arena bookkeeping.
func HeapState() admalloc.State {
	return heap.arena.Snapshot()
}

// HeapUsed reports the heap words in use and the heap capacity.
func HeapUsed() (used, capacity int) {
	return heap.arena.Used(), heap.arena.Capacity()
}
