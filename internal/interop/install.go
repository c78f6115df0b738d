package interop

import (
	"github.com/wippyai/ad936x/hal"
	"github.com/wippyai/ad936x/noos"
)

// Install binds the device's peripherals and heap for the next driver
// call. The SPI descriptor in params is pointed at the bus slot; when
// resetb is non-nil the RESETB descriptor is pointed at the reset slot
// and, if it was marked unused, given line number 1.
//
// Every binding from a previous Install is replaced.
func Install[B hal.Bus, D hal.Delay, P hal.OutputPin](params *noos.InitParam, bus *B, d *D, resetb *P, words []uint32) {
	unbind()

	h := BindBus(bus)
	params.SPIParam.PlatformOps = h
	params.SPIParam.Extra = h

	if resetb != nil {
		h := BindResetB(resetb)
		if params.GPIOResetb.Unused() {
			params.GPIOResetb.Number = 1
		}
		params.GPIOResetb.PlatformOps = h
		params.GPIOResetb.Extra = h
	}

	BindDelay(d)
	initHeap(words)
	errno = 0
}

// Teardown drops every binding and forgets the heap. Hooks called
// afterwards are violations.
func Teardown() {
	flushConsole()
	unbind()
	releaseHeap()
	errno = 0
}
