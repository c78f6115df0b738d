package interop

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/hal"
	"github.com/wippyai/ad936x/noos"
)

// Slot handles stored in descriptor PlatformOps/Extra fields.
const (
	SlotNone uint32 = iota
	SlotBus
	SlotResetB
	slotCount
)

type transferFunc func(obj unsafe.Pointer, buf []byte) int32

type setFunc func(obj unsafe.Pointer, level uint8) int32

type delayFunc func(obj unsafe.Pointer, n uint32)

// slot pairs a type-erased adapter with the object it was instantiated for.
type slot struct {
	obj      unsafe.Pointer
	transfer transferFunc
	set      setFunc
}

var (
	slots [slotCount]slot

	delay struct {
		obj unsafe.Pointer
		ms  delayFunc
		us  delayFunc
	}
)

// busTransfer is instantiated per bus type; obj must point to a B.
func busTransfer[B hal.Bus](obj unsafe.Pointer, buf []byte) int32 {
	if err := (*(*B)(obj)).Transfer(buf); err != nil {
		Logger().Debug("spi transfer failed", zap.Int("bytes", len(buf)), zap.Error(err))
		return noos.Failure
	}
	return noos.OK
}

// pinSet is instantiated per pin type; obj must point to a P.
func pinSet[P hal.OutputPin](obj unsafe.Pointer, level uint8) int32 {
	pin := (*P)(obj)
	var err error
	if level == 0 {
		err = (*pin).SetLow()
	} else {
		err = (*pin).SetHigh()
	}
	if err != nil {
		Logger().Debug("gpio set failed", zap.Uint8("level", level), zap.Error(err))
		return noos.Failure
	}
	return noos.OK
}

func delayMs[D hal.Delay](obj unsafe.Pointer, ms uint32) {
	(*(*D)(obj)).DelayMs(ms)
}

func delayUs[D hal.Delay](obj unsafe.Pointer, us uint32) {
	(*(*D)(obj)).DelayUs(us)
}

// BindBus stores the transfer adapter for B and the bus address in the
// bus slot and returns its handle.
func BindBus[B hal.Bus](bus *B) uint32 {
	slots[SlotBus] = slot{obj: unsafe.Pointer(bus), transfer: busTransfer[B]}
	return SlotBus
}

// BindResetB stores the set adapter for P and the pin address in the
// reset slot and returns its handle.
func BindResetB[P hal.OutputPin](pin *P) uint32 {
	slots[SlotResetB] = slot{obj: unsafe.Pointer(pin), set: pinSet[P]}
	return SlotResetB
}

// BindDelay installs d as the source for mdelay and udelay.
func BindDelay[D hal.Delay](d *D) {
	delay.obj = unsafe.Pointer(d)
	delay.ms = delayMs[D]
	delay.us = delayUs[D]
}

func unbind() {
	slots = [slotCount]slot{}
	delay.obj, delay.ms, delay.us = nil, nil, nil
}

func lookup(what string, handle uint32) *slot {
	if handle == SlotNone || handle >= slotCount {
		errors.Violate(errors.Unbound(what, handle))
	}
	return &slots[handle]
}

// Transfer runs the bus adapter named by ops against the object named by
// extra. It is the body of spi_write_and_read.
func Transfer(ops, extra uint32, buf []byte) int32 {
	fn := lookup("spi ops", ops).transfer
	obj := lookup("spi object", extra).obj
	if fn == nil || obj == nil {
		errors.Violate(errors.Unbound("spi", ops))
	}
	return fn(obj, buf)
}

// SetLevel runs the pin adapter named by ops. A descriptor without a
// bound object is an unconnected line and always succeeds.
func SetLevel(number int32, ops, extra uint32, level uint8) int32 {
	if extra == SlotNone || extra >= slotCount || slots[extra].obj == nil {
		Logger().Debug("gpio set (unconnected)", zap.Int32("number", number), zap.Uint8("level", level))
		return noos.OK
	}
	fn := lookup("gpio ops", ops).set
	if fn == nil {
		errors.Violate(errors.Unbound("gpio", ops))
	}
	Logger().Debug("gpio set", zap.Int32("number", number), zap.Uint8("level", level))
	return fn(slots[extra].obj, level)
}

// DelayMs blocks through the bound delay source.
func DelayMs(ms uint32) {
	if delay.ms == nil || delay.obj == nil {
		errors.Violate(errors.Unbound("delay", 0))
	}
	delay.ms(delay.obj, ms)
}

// DelayUs blocks through the bound delay source.
func DelayUs(us uint32) {
	if delay.us == nil || delay.obj == nil {
		errors.Violate(errors.Unbound("delay", 0))
	}
	delay.us(delay.obj, us)
}
