package ad936x

import (
	"go.uber.org/zap"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/hal"
	"github.com/wippyai/ad936x/internal/interop"
	"github.com/wippyai/ad936x/noos"
)

// Interface timing and LVDS registers written directly by the device.
const (
	regRxClockDataDelay = 0x006
	regTxClockDataDelay = 0x007
	regLVDSBiasCtrl     = 0x03C

	maxIntfDelay = 15
	minLVDSBias  = 75
	maxLVDSBias  = 450
)

// noCopy makes go vet's copylocks check flag copies of a Device.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Device is an AD9361 transceiver driven by a no-OS driver. It owns the
// peripherals and the heap the driver runs on.
//
// The driver keeps pointers into the Device once Init has run, so a
// Device must stay where New put it. Using a copy panics.
//
// Only one Device may be live at a time.
type Device[B hal.Bus, D hal.Delay, P hal.OutputPin] struct {
	_    noCopy
	self *Device[B, D, P]

	driver noos.Driver
	inner  noos.Phy
	params noos.InitParam

	bus      B
	delay    D
	resetb   P
	hasReset bool
	heap     []uint32

	initialized bool
	closed      bool
}

// NewHeap returns a driver heap of the given number of words.
func NewHeap(words int) []uint32 {
	return make([]uint32, 0, words)
}

// New creates a device with a dedicated RESETB pin. The heap is used
// for every allocation the driver makes; its capacity is what counts.
//
// New panics if another Device is live.
func New[B hal.Bus, D hal.Delay, P hal.OutputPin](driver noos.Driver, bus B, delay D, resetb *P, heap []uint32) *Device[B, D, P] {
	interop.Acquire()

	d := &Device[B, D, P]{
		driver: driver,
		params: noos.DefaultInitParam(),
		bus:    bus,
		delay:  delay,
		heap:   heap,
	}
	if resetb != nil {
		d.resetb = *resetb
		d.hasReset = true
	}
	d.self = d

	Logger().Debug("device created",
		zap.Bool("resetb", d.hasReset),
		zap.Int("heap_words", cap(heap)))
	return d
}

// NewWithoutReset creates a device that is reset through SPI.
func NewWithoutReset[B hal.Bus, D hal.Delay](driver noos.Driver, bus B, delay D, heap []uint32) *Device[B, D, hal.NoPin] {
	return New[B, D, hal.NoPin](driver, bus, delay, nil, heap)
}

// Init initializes the transceiver with params. It may be called again
// to re-initialize; the previous driver state is released first.
func (d *Device[B, D, P]) Init(params noos.InitParam) error {
	d.copyCheck("init")
	if d.closed {
		errors.Violate(errors.New(errors.PhaseInit, errors.KindNotInitialized).
			Op("init").
			Detail("device is closed").
			Build())
	}

	d.params = params
	d.initialized = false

	var resetb *P
	if d.hasReset {
		resetb = &d.resetb
	}
	interop.Install(&d.params, &d.bus, &d.delay, resetb, d.heap)

	if d.inner != nil {
		d.driver.Remove(d.inner)
		d.inner = nil
	}

	if rc := d.driver.Init(interop.Env(), &d.inner, &d.params); rc != noos.OK {
		Logger().Warn("driver init failed", zap.Int32("status", rc))
		return errors.Status(errors.PhaseInit, "ad9361_init", rc)
	}
	d.initialized = true

	used, capacity := interop.HeapUsed()
	Logger().Info("device initialized",
		zap.Int("heap_used", used),
		zap.Int("heap_words", capacity))
	return nil
}

// Close releases the driver state and frees the device slot so another
// Device can be created. Closing twice is a no-op.
func (d *Device[B, D, P]) Close() error {
	if d.closed {
		return nil
	}
	d.copyCheck("close")

	var err error
	if d.inner != nil {
		if rc := d.driver.Remove(d.inner); rc != noos.OK {
			err = errors.Status(errors.PhaseInit, "ad9361_remove", rc)
		}
		d.inner = nil
	}
	interop.Teardown()

	d.initialized = false
	d.closed = true
	interop.Release()
	return err
}

func (d *Device[B, D, P]) copyCheck(op string) {
	if d.self != d {
		errors.Violate(errors.Moved(op))
	}
}

func (d *Device[B, D, P]) handle(op string) handle {
	if !d.initialized || d.inner == nil {
		errors.Violate(errors.NotInitialized(errors.PhaseAccess, op))
	}
	d.copyCheck(op)
	return handle{drv: d.driver, phy: d.inner}
}

// Initialized reports whether the last Init succeeded.
func (d *Device[B, D, P]) Initialized() bool {
	return d.initialized
}

// Bus returns the bus the driver talks through.
func (d *Device[B, D, P]) Bus() *B {
	return &d.bus
}

// Delay returns the delay source.
func (d *Device[B, D, P]) Delay() *D {
	return &d.delay
}

// Params returns the parameters of the last Init, including the
// descriptor handles filled in by the device.
func (d *Device[B, D, P]) Params() noos.InitParam {
	return d.params
}

// SetIntfDelay programs the digital interface clock and data delays of
// the TX (tx true) or RX data port. Both delays are 0..15. When
// clockChanged is set the ENSM is parked in Alert around the write and
// returned to FDD afterwards.
func (d *Device[B, D, P]) SetIntfDelay(tx bool, clockDelay, dataDelay uint32, clockChanged bool) error {
	if clockDelay > maxIntfDelay {
		errors.Violate(errors.OutOfRange(errors.PhaseAccess, "set_intf_delay", clockDelay, 0, maxIntfDelay))
	}
	if dataDelay > maxIntfDelay {
		errors.Violate(errors.OutOfRange(errors.PhaseAccess, "set_intf_delay", dataDelay, 0, maxIntfDelay))
	}
	h := d.handle("set_intf_delay")

	if clockChanged {
		h.drv.EnsmForceState(h.phy, uint8(Alert))
	}
	reg := uint32(regRxClockDataDelay)
	if tx {
		reg = regTxClockDataDelay
	}
	rc := h.drv.SPIWrite(h.phy, reg, clockDelay<<4|dataDelay)
	if clockChanged {
		h.drv.EnsmForceState(h.phy, uint8(Fdd))
	}
	return h.status("set_intf_delay", rc)
}

// SetLvdsBiasControl writes the LVDS bias control register. biasMV is
// the output swing, 75..450 mV in 75 mV steps.
func (d *Device[B, D, P]) SetLvdsBiasControl(rxOnChipTerm, lvdsTxLoVcm bool, biasMV uint32) error {
	if biasMV < minLVDSBias || biasMV > maxLVDSBias {
		errors.Violate(errors.OutOfRange(errors.PhaseAccess, "set_lvds_bias_control", biasMV, minLVDSBias, maxLVDSBias))
	}
	h := d.handle("set_lvds_bias_control")

	v := (biasMV - minLVDSBias) / minLVDSBias
	if rxOnChipTerm {
		v |= 0x20
	}
	if lvdsTxLoVcm {
		v |= 0x08
	}
	return h.status("set_lvds_bias_control", h.drv.SPIWrite(h.phy, regLVDSBiasCtrl, v))
}
