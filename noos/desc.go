package noos

// SPI clock modes.
const (
	SPIMode0 uint8 = iota
	SPIMode1
	SPIMode2
	SPIMode3
)

// SPIInitParam describes the SPI link in InitParam.
//
// PlatformOps and Extra name the trampoline slot that carries the bus
// transfer; they are filled in when a device binds its peripherals.
type SPIInitParam struct {
	PlatformOps uint32
	Extra       uint32
	MaxSpeedHz  uint32
	ChipSelect  uint8
	Mode        uint8
}

// SPIDesc is the descriptor handed back by spi_init. It shares the
// layout of SPIInitParam so a parameter block can serve as its own
// descriptor.
type SPIDesc SPIInitParam

// GPIOInitParam describes one GPIO line in InitParam. A negative Number
// marks the line as unused.
type GPIOInitParam struct {
	Number      int32
	PlatformOps uint32
	Extra       uint32
}

// GPIODesc is the descriptor handed back by gpio_get.
type GPIODesc GPIOInitParam

// Unused reports whether the line is marked absent.
func (p *GPIOInitParam) Unused() bool {
	return p.Number < 0
}
