package noos

import "unsafe"

// Env is the set of platform symbols the driver links against. The
// interop layer provides one backed by the device's heap and peripherals.
//
// Every hook follows the C calling convention of the no-OS platform
// layer: statuses are int32 with 0 meaning success, and descriptors are
// returned through out-pointers.
type Env struct {
	// Memory
	Malloc func(size uintptr) unsafe.Pointer
	Calloc func(nmemb, size uintptr) unsafe.Pointer
	Free   func(ptr unsafe.Pointer)

	// SPI
	SPIInit         func(desc **SPIDesc, param *SPIInitParam) int32
	SPIWriteAndRead func(desc *SPIDesc, data *uint8, n uint16) int32
	SPIRemove       func(desc *SPIDesc) int32

	// GPIO
	GPIOGet             func(desc **GPIODesc, param *GPIOInitParam) int32
	GPIOGetOptional     func(desc **GPIODesc, param *GPIOInitParam) int32
	GPIODirectionInput  func(desc *GPIODesc, value uint8) int32
	GPIODirectionOutput func(desc *GPIODesc, value uint8) int32
	GPIOSetValue        func(desc *GPIODesc, value uint8) int32
	GPIOGetValue        func(desc *GPIODesc, value *uint8) int32
	GPIORemove          func(desc *GPIODesc) int32

	// Timing
	Mdelay func(ms uint32)
	Udelay func(us uint32)

	// Misc
	DoDiv   func(n *uint64, base uint64) uint64
	Errno   func() *int32
	Putchar func(c int32)
	Puts    func(s *byte)
	Strlen  func(s *byte) uintptr
}
