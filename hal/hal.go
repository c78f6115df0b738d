// Package hal defines the peripheral capabilities the transceiver driver
// is wired to: a byte-transfer bus, a digital output pin and a blocking
// delay source.
//
// Implementations are supplied by the embedding application. The
// hal/periph package adapts periph.io devices; transaction.Simulator
// provides an in-memory register file for tests.
package hal

// Bus performs an in-place full-duplex transfer: buf is written out and
// overwritten with the bytes clocked in.
type Bus interface {
	Transfer(buf []byte) error
}

// OutputPin is a digital output line.
type OutputPin interface {
	SetLow() error
	SetHigh() error
}

// Delay blocks the caller for the requested duration.
type Delay interface {
	DelayMs(ms uint32)
	DelayUs(us uint32)
}
