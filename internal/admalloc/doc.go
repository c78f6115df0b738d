// Package admalloc implements the special-purpose allocator handed to the
// AD9361 driver.
//
// Requests shorter than 8 bytes are served from a scratchpad that holds one
// allocation at a time. Larger requests are bump-allocated in 4-byte words
// from a caller-owned heap. Only the most recent heap allocation can be
// freed; freeing the start of the heap releases everything.
//
// # Addresses
//
// An Arena works on plain addresses so the same bookkeeping serves both a
// Go-backed heap and a region of wasm guest memory:
//
//	var a admalloc.Arena
//	a.Init(base, words, scratch, zeroer)
//	p := a.Alloc(64)
//	a.Free(p)
//
// Misuse (allocating before Init, a second scratchpad allocation, running
// past the end of the heap) panics with an *errors.Violation.
//
// The arena is not reentrant and not safe for concurrent use.
package admalloc
