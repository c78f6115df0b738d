package admalloc

import (
	"math/bits"

	"go.uber.org/zap"

	"github.com/wippyai/ad936x/errors"
)

// Addr is an address in the memory the arena manages.
type Addr uintptr

const (
	// ScratchpadSize is the scratchpad capacity; smaller requests use it.
	ScratchpadSize = 8
	// WordSize is the heap allocation granularity.
	WordSize = 4
)

// Zeroer clears n bytes at addr. Calloc uses it to zero fresh blocks.
type Zeroer interface {
	Zero(addr Addr, n uintptr)
}

// State is a snapshot of the arena bookkeeping.
type State struct {
	Top          Addr
	Prev         Addr
	ScratchTaken bool
}

// Arena is a scratchpad plus bump heap.
type Arena struct {
	start   Addr
	top     Addr
	prev    Addr
	end     Addr
	scratch Addr

	scratchTaken bool
	ready        bool

	mem Zeroer
	log *zap.Logger
}

// Init points the arena at a heap of words 4-byte words starting at start,
// with an 8-byte scratchpad at scratch. All previous state is discarded.
func (a *Arena) Init(start Addr, words int, scratch Addr, mem Zeroer) {
	a.start = start
	a.top = start
	a.prev = 0
	a.end = start + Addr(words*WordSize)
	a.scratch = scratch
	a.scratchTaken = false
	a.ready = true
	a.mem = mem
}

// SetLogger sets the diagnostics logger. Nil restores the no-op logger.
func (a *Arena) SetLogger(l *zap.Logger) {
	a.log = l
}

func (a *Arena) logger() *zap.Logger {
	if a.log == nil {
		return zap.NewNop()
	}
	return a.log
}

// Release forgets the heap. Allocating afterwards is a violation until the
// next Init.
func (a *Arena) Release() {
	*a = Arena{log: a.log}
}

// Ready reports whether Init has been called since the last Release.
func (a *Arena) Ready() bool {
	return a.ready
}

// Alloc returns size bytes.
func (a *Arena) Alloc(size uintptr) Addr {
	if size < ScratchpadSize {
		if a.scratchTaken {
			errors.Violate(errors.Reentrant(errors.PhaseAlloc, "scratchpad"))
		}
		a.scratchTaken = true
		return a.scratch
	}

	if !a.ready {
		errors.Violate(errors.NotInitialized(errors.PhaseAlloc, "admalloc"))
	}

	words := (size + WordSize - 1) / WordSize
	if words > uintptr(a.end-a.top)/WordSize {
		errors.Violate(errors.HeapExhausted(size, a.Used(), a.Capacity()))
	}

	a.prev = a.top
	a.top += Addr(words * WordSize)
	a.logger().Debug("allocated", zap.Uintptr("bytes", size), zap.Uintptr("words", words))
	return a.prev
}

// Calloc returns n*size zeroed bytes.
func (a *Arena) Calloc(n, size uintptr) Addr {
	hi, total := bits.Mul64(uint64(n), uint64(size))
	if hi != 0 || total != uint64(uintptr(total)) {
		errors.Violate(errors.HeapExhausted(^uintptr(0), a.Used(), a.Capacity()))
	}

	addr := a.Alloc(uintptr(total))
	if a.mem != nil && total > 0 {
		a.mem.Zero(addr, uintptr(total))
	}
	return addr
}

// Free releases addr if it is the scratchpad, the heap start or the most
// recent heap allocation. Other addresses are ignored.
func (a *Arena) Free(addr Addr) {
	switch {
	case addr == 0:
		a.logger().Warn("tried to free null pointer")
	case addr == a.scratch:
		a.scratchTaken = false
	case addr == a.start:
		a.top = a.start
		a.logger().Debug("deallocated everything")
	case addr == a.prev:
		a.top = a.prev
		a.logger().Debug("deallocated last allocation")
	}
}

// Snapshot returns the current bookkeeping.
func (a *Arena) Snapshot() State {
	return State{Top: a.top, Prev: a.prev, ScratchTaken: a.scratchTaken}
}

// Start returns the heap base.
func (a *Arena) Start() Addr {
	return a.start
}

// Used returns the heap words currently allocated.
func (a *Arena) Used() int {
	return int(a.top-a.start) / WordSize
}

// Capacity returns the heap size in words.
func (a *Arena) Capacity() int {
	return int(a.end-a.start) / WordSize
}
