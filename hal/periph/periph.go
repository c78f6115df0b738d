//go:build !tinygo

// Package periph adapts periph.io SPI ports and GPIO lines to the hal
// capability interfaces.
package periph

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Bus wraps an spi.Conn as a hal.Bus.
type Bus struct {
	conn spi.Conn
	rx   []byte
}

// NewBus wraps conn.
func NewBus(conn spi.Conn) *Bus {
	return &Bus{conn: conn}
}

// Transfer clocks buf out and replaces it with the bytes read back.
func (b *Bus) Transfer(buf []byte) error {
	if cap(b.rx) < len(buf) {
		b.rx = make([]byte, len(buf))
	}
	rx := b.rx[:len(buf)]
	if err := b.conn.Tx(buf, rx); err != nil {
		return fmt.Errorf("spi transfer: %w", err)
	}
	copy(buf, rx)
	return nil
}

// Pin wraps a gpio.PinOut as a hal.OutputPin.
type Pin struct {
	gpio.PinOut
}

func (p *Pin) SetLow() error  { return p.Out(gpio.Low) }
func (p *Pin) SetHigh() error { return p.Out(gpio.High) }

// Config selects the hardware the transceiver is attached to.
type Config struct {
	// SPI is the spireg port name, e.g. "/dev/spidev0.0".
	// Defaults to "/dev/spidev0.0" if not provided.
	SPI string
	// Hz is the SPI clock frequency. Defaults to 10 MHz.
	Hz int64
	// ResetPin is the gpioreg name of the RESETB line, e.g. "GPIO25".
	// Empty means the device is reset in software.
	ResetPin string
}

// Hardware is an opened SPI port and optional reset line.
type Hardware struct {
	Bus   *Bus
	Reset *Pin
	port  spi.PortCloser
}

// Close releases the SPI port.
func (h *Hardware) Close() error {
	return h.port.Close()
}

// Open initializes the periph.io host drivers and opens the configured
// SPI port and reset line. The AD9361 samples on the falling edge, so
// the port is opened in SPI mode 1.
func Open(c Config) (*Hardware, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}

	if c.SPI == "" {
		c.SPI = "/dev/spidev0.0"
	}
	p, err := spireg.Open(c.SPI)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port %s: %w", c.SPI, err)
	}

	if c.Hz == 0 {
		c.Hz = 10_000_000
	}
	conn, err := p.Connect(physic.Frequency(c.Hz)*physic.Hertz, spi.Mode1, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to create SPI connection: %w", err)
	}

	hw := &Hardware{Bus: NewBus(conn), port: p}
	if c.ResetPin != "" {
		line := gpioreg.ByName(c.ResetPin)
		if line == nil {
			p.Close()
			return nil, fmt.Errorf("failed to open reset pin %s", c.ResetPin)
		}
		hw.Reset = &Pin{PinOut: line}
	}
	return hw, nil
}
