package interop

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/noos"
)

var env = noos.Env{
	Malloc: Malloc,
	Calloc: Calloc,
	Free:   Free,

	SPIInit:         spiInit,
	SPIWriteAndRead: spiWriteAndRead,
	SPIRemove:       spiRemove,

	GPIOGet:             gpioGet,
	GPIOGetOptional:     gpioGet,
	GPIODirectionInput:  gpioDirection,
	GPIODirectionOutput: gpioDirection,
	GPIOSetValue:        gpioSetValue,
	GPIOGetValue:        gpioGetValue,
	GPIORemove:          gpioRemove,

	Mdelay: DelayMs,
	Udelay: DelayUs,

	DoDiv:   DoDiv,
	Errno:   Errno,
	Putchar: Putchar,
	Puts:    puts,
	Strlen:  Strlen,
}

// Env returns the platform symbol table handed to native drivers.
func Env() *noos.Env {
	return &env
}

// spiInit hands back the parameter block as the descriptor.
func spiInit(desc **noos.SPIDesc, param *noos.SPIInitParam) int32 {
	*desc = (*noos.SPIDesc)(param)
	return noos.OK
}

func spiWriteAndRead(desc *noos.SPIDesc, data *uint8, n uint16) int32 {
	if desc == nil {
		errors.Violate(errors.Unbound("spi descriptor", 0))
	}
	return Transfer(desc.PlatformOps, desc.Extra, unsafe.Slice(data, n))
}

// spiRemove is a no-op: the device owns the bus.
func spiRemove(*noos.SPIDesc) int32 {
	return noos.OK
}

// gpioGet hands back the parameter block as the descriptor, or nil for
// an unused line.
func gpioGet(desc **noos.GPIODesc, param *noos.GPIOInitParam) int32 {
	if param.Unused() {
		*desc = nil
	} else {
		*desc = (*noos.GPIODesc)(param)
	}
	return noos.OK
}

// gpioDirection assumes lines are configured by the application.
func gpioDirection(*noos.GPIODesc, uint8) int32 {
	return noos.OK
}

func gpioSetValue(desc *noos.GPIODesc, value uint8) int32 {
	if desc == nil {
		return noos.OK
	}
	return SetLevel(desc.Number, desc.PlatformOps, desc.Extra, value)
}

// gpioGetValue always reads low.
func gpioGetValue(desc *noos.GPIODesc, value *uint8) int32 {
	if desc != nil {
		Logger().Debug("gpio get", zap.Int32("number", desc.Number))
	}
	*value = 0
	return noos.OK
}

// gpioRemove is a no-op: the device owns the pins.
func gpioRemove(*noos.GPIODesc) int32 {
	return noos.OK
}

func puts(s *byte) {
	Puts(unsafe.String(s, Strlen(s)))
}
