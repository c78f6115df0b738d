package sim

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/ad936x/noos"
	"github.com/wippyai/ad936x/transaction"
)

// Driver is the simulated driver. The zero value is ready to use.
type Driver struct {
	log *zap.Logger
}

var _ noos.Driver = (*Driver)(nil)

// New returns a driver with a no-op logger.
func New() *Driver {
	return &Driver{}
}

// SetLogger sets the diagnostics logger. Nil restores the no-op logger.
func (d *Driver) SetLogger(l *zap.Logger) {
	d.log = l
}

func (d *Driver) logger() *zap.Logger {
	if d.log == nil {
		return zap.NewNop()
	}
	return d.log
}

// Init brings the part up: allocate state, claim the SPI and GPIO
// descriptors, reset, identify, wait for the PLLs and enter the
// configured ENSM state.
func (d *Driver) Init(env *noos.Env, out *noos.Phy, params *noos.InitParam) int32 {
	*env.Errno() = 0

	p := (*phy)(env.Calloc(1, phyBlockSize))
	if p == nil {
		return noos.ENOMEM
	}
	p.env = env
	p.pdata = (*platformData)(env.Calloc(1, pdataBlockSize))
	p.clk = (*clockTree)(env.Calloc(1, clkBlockSize))
	if p.pdata == nil || p.clk == nil {
		p.free()
		return noos.ENOMEM
	}

	if rc := p.bringUp(params); rc != noos.OK {
		d.logger().Debug("init failed", zap.Int32("status", rc))
		p.release()
		return rc
	}

	p.banner()
	*out = noos.Phy(unsafe.Pointer(p))
	return noos.OK
}

func (p *phy) bringUp(params *noos.InitParam) int32 {
	env := p.env
	if rc := env.SPIInit(&p.spi, &params.SPIParam); rc != noos.OK {
		return rc
	}
	for _, g := range []struct {
		desc  **noos.GPIODesc
		param *noos.GPIOInitParam
	}{
		{&p.resetb, &params.GPIOResetb},
		{&p.sync, &params.GPIOSync},
		{&p.calSw1, &params.GPIOCalSw1},
		{&p.calSw2, &params.GPIOCalSw2},
	} {
		if rc := env.GPIOGetOptional(g.desc, g.param); rc != noos.OK {
			return rc
		}
	}

	if rc := p.reset(); rc != noos.OK {
		return rc
	}

	id, rc := p.read(regProductID)
	if rc != noos.OK {
		return rc
	}
	if id&productIDMask != productID {
		return noos.ENODEV
	}
	p.rev = id & revMask

	if rc := p.configure(params); rc != noos.OK {
		return rc
	}

	if rc := p.waitLock(regBBPLLLock, bbpllLocked); rc != noos.OK {
		return rc
	}
	if rc := p.waitLock(regRxSynthLock, synthLocked); rc != noos.OK {
		return rc
	}
	if rc := p.waitLock(regTxSynthLock, synthLocked); rc != noos.OK {
		return rc
	}

	for ch := uint8(0); ch < 2; ch++ {
		if !p.channelOK(ch) {
			continue
		}
		if rc := p.writeAtten(ch, uint32(params.TxAttenuationMdB)); rc != noos.OK {
			return rc
		}
	}

	ensm := uint8(ensmAlert)
	if p.fdd {
		ensm = ensmFDD
	}
	return p.write(regENSMConfig, ensm)
}

// reset pulses RESETB when it is wired and falls back to a soft reset
// through the SPI configuration register otherwise.
func (p *phy) reset() int32 {
	env := p.env
	if p.resetb != nil {
		if rc := env.GPIODirectionOutput(p.resetb, 0); rc != noos.OK {
			return rc
		}
		if rc := env.GPIOSetValue(p.resetb, 0); rc != noos.OK {
			return rc
		}
		env.Mdelay(resetHoldMs)
		if rc := env.GPIOSetValue(p.resetb, 1); rc != noos.OK {
			return rc
		}
		env.Mdelay(resetHoldMs)
		return noos.OK
	}
	if rc := p.write(regSPIConf, softReset); rc != noos.OK {
		return rc
	}
	return p.write(regSPIConf, 0)
}

// configure validates params and loads them into platform data and the
// clock tree.
func (p *phy) configure(params *noos.InitParam) int32 {
	pd, clk := p.pdata, p.clk

	p.devSel = params.DevSel
	p.rx2tx2 = params.TwoRxTwoTxModeEnable != 0 && params.DevSel != noos.IDAD9364
	p.fdd = params.FrequencyDivisionDuplexModeEnable != 0

	if !loInRange(params.RxSynthesizerFrequencyHz) || !loInRange(params.TxSynthesizerFrequencyHz) {
		return noos.EINVAL
	}
	if params.TxAttenuationMdB < 0 || params.TxAttenuationMdB > maxTxAttenMdB {
		return noos.EINVAL
	}
	if params.RxRFPortInputSelect > maxRxPort || params.TxRFPortInputSelect > maxTxPort {
		return noos.EINVAL
	}
	if params.GCRx1Mode > maxGainMode || params.GCRx2Mode > maxGainMode {
		return noos.EINVAL
	}

	pd.rxLO = params.RxSynthesizerFrequencyHz
	pd.txLO = params.TxSynthesizerFrequencyHz
	pd.rxLOExt = params.ExternalRxLOEnable
	pd.txLOExt = params.ExternalTxLOEnable
	pd.rxBandwidth = params.RFRxBandwidthHz
	pd.txBandwidth = params.RFTxBandwidthHz
	pd.rxPort = params.RxRFPortInputSelect
	pd.txPort = params.TxRFPortInputSelect
	pd.gainMode = [2]uint8{params.GCRx1Mode, params.GCRx2Mode}

	clk.refClk = params.ReferenceClkRate
	clk.rx = params.RxPathClockFrequencies
	clk.tx = params.TxPathClockFrequencies
	clk.bbpll = uint64(clk.rx[0])

	if rc := p.write(regInputSelect, portSelect(pd.rxPort, pd.txPort)); rc != noos.OK {
		return rc
	}
	return p.write(regAGCConfig1, gainModeBits(pd.gainMode))
}

func (p *phy) waitLock(reg uint16, mask uint8) int32 {
	for i := 0; i < lockPolls; i++ {
		v, rc := p.read(reg)
		if rc != noos.OK {
			return rc
		}
		if v&mask != 0 {
			return noos.OK
		}
		p.env.Udelay(lockPollUs)
	}
	return noos.ETIMEDOUT
}

func (p *phy) banner() {
	msg := fmt.Sprintf("ad9361_init : AD936x Rev %d successfully initialized", p.rev)
	buf := append([]byte(msg), 0)
	p.env.Puts(&buf[0])
}

// Remove releases the descriptors and the heap blocks, newest first.
func (d *Driver) Remove(ph noos.Phy) int32 {
	p := state(ph)
	if p == nil || p.removed {
		return noos.EFAULT
	}
	p.release()
	return noos.OK
}

func (p *phy) release() {
	env := p.env
	if p.spi != nil {
		env.SPIRemove(p.spi)
	}
	for _, g := range []*noos.GPIODesc{p.calSw2, p.calSw1, p.sync, p.resetb} {
		if g != nil {
			env.GPIORemove(g)
		}
	}
	p.free()
}

func (p *phy) free() {
	env := p.env
	p.removed = true
	if p.clk != nil {
		env.Free(unsafe.Pointer(p.clk))
	}
	if p.pdata != nil {
		env.Free(unsafe.Pointer(p.pdata))
	}
	env.Free(unsafe.Pointer(p))
}

// read performs a single-byte register read. The frame lives on the
// platform scratchpad for the duration of the transfer.
func (p *phy) read(reg uint16) (uint8, int32) {
	buf := (*[transaction.FrameSize]byte)(p.env.Malloc(transaction.FrameSize))
	defer p.env.Free(unsafe.Pointer(buf))

	*buf = transaction.EncodeRead(reg)
	if rc := p.env.SPIWriteAndRead(p.spi, &buf[0], transaction.FrameSize); rc != noos.OK {
		return 0, rc
	}
	return buf[2], noos.OK
}

func (p *phy) write(reg uint16, v uint8) int32 {
	buf := (*[transaction.FrameSize]byte)(p.env.Malloc(transaction.FrameSize))
	defer p.env.Free(unsafe.Pointer(buf))

	*buf = transaction.EncodeWrite(reg, v)
	return p.env.SPIWriteAndRead(p.spi, &buf[0], transaction.FrameSize)
}

func loInRange(hz uint64) bool {
	return hz >= minLoHz && hz <= maxLoHz
}

func portSelect(rx, tx uint32) uint8 {
	return uint8(rx&0x3F) | uint8(tx&1)<<6
}

func gainModeBits(modes [2]uint8) uint8 {
	return modes[0]&3 | (modes[1]&3)<<2
}
