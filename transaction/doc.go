// Package transaction decodes and encodes AD9361 SPI register frames.
//
// Every driver access is a 16-bit instruction word followed by data:
//
//	byte 0: W | N2 N1 N0 | x x | A9 A8
//	byte 1: A7 .. A0
//	byte 2: data (first byte)
//
// W is set for writes, N is the byte count minus one and A is the
// register address.
//
// # Simulator
//
// Simulator is a hal.Bus backed by a register file. It answers the reads
// the driver makes during bring-up (product ID, PLL lock, calibration
// done) so a device can be initialized without hardware:
//
//	bus := transaction.NewSimulator()
//	bus.Force(0x0E, 5) // temperature sensor
//	dev := ad936x.NewWithoutReset(sim.New(), bus, hal.SleepDelay{}, heap)
package transaction
