// Package noos describes the call boundary of the Analog Devices no-OS
// AD9361 driver in Go terms.
//
// InitParam, the descriptor types and the FIR configs are value types
// matching the driver's C structs field for field. Env lists the
// platform symbols the driver imports (allocator, SPI, GPIO, delays and
// libc odds and ends). Driver lists the ad9361_* entry points the
// bridge calls.
//
// Two Driver implementations live in this module: wasmhost runs a wasm32
// build of the C driver, and noos/sim answers at register level for
// tests and the simulator console.
package noos
