// Package sim is a register-level stand-in for the AD9361 no-OS driver.
//
// Driver implements noos.Driver the way the C driver behaves at its call
// boundary: state lives in blocks taken from the platform heap, the SPI
// and GPIO descriptors are obtained through the platform hooks and kept
// for the life of the device, every register access is an SPI frame, and
// results are integer statuses. It performs no calibration; register
// values that the real part would report after calibration are expected
// to come from the bus, usually a transaction.Simulator.
package sim
