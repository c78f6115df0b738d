package sim

import (
	"github.com/wippyai/ad936x/noos"
)

func (d *Driver) BistPrbs(ph noos.Phy, mode noos.BistMode) int32 {
	if mode > noos.BistInjRx {
		return noos.EINVAL
	}
	p := state(ph)
	if rc := p.write(regBistConfig, uint8(mode)); rc != noos.OK {
		return rc
	}
	p.pdata.bist = mode
	return noos.OK
}

func (d *Driver) GetBistPrbs(ph noos.Phy, mode *noos.BistMode) {
	*mode = state(ph).pdata.bist
}

func (d *Driver) BistLoopback(ph noos.Phy, mode int32) int32 {
	if mode < 0 || mode > maxLoopback {
		return noos.EINVAL
	}
	p := state(ph)
	if rc := p.write(regObserveConfig, uint8(mode)); rc != noos.OK {
		return rc
	}
	p.pdata.loopback = mode
	return noos.OK
}

func (d *Driver) GetBistLoopback(ph noos.Phy, mode *int32) {
	*mode = state(ph).pdata.loopback
}

// BistTone injects a test tone. levelDB is rounded down to a 6 dB step.
func (d *Driver) BistTone(ph noos.Phy, mode noos.BistMode, freqHz, levelDB, mask uint32) int32 {
	if mode > noos.BistInjRx || levelDB > 18 {
		return noos.EINVAL
	}
	pd := state(ph).pdata
	pd.toneMode = mode
	pd.toneFreqHz = freqHz
	pd.toneLevel = levelDB / 6 * 6
	pd.toneMask = mask
	return noos.OK
}

// EnsmGetState returns 0xFF when the state register cannot be read.
func (d *Driver) EnsmGetState(ph noos.Phy) uint8 {
	v, rc := state(ph).read(regENSMConfig)
	if rc != noos.OK {
		return ensmErr
	}
	return v & ensmStateMask
}

func (d *Driver) EnsmForceState(ph noos.Phy, ensm uint8) {
	p := state(ph)
	if rc := p.write(regENSMConfig, ensm&ensmStateMask); rc != noos.OK {
		d.logger().Debug("ensm force failed")
	}
}

// GetTemperature converts the sensor count to millidegrees, rounding to
// nearest.
func (d *Driver) GetTemperature(ph noos.Phy, milliC *int32) int32 {
	p := state(ph)
	v, rc := p.read(regTemperature)
	if rc != noos.OK {
		return rc
	}
	n := uint64(v)*1000000 + 570
	p.env.DoDiv(&n, 1140)
	*milliC = int32(n)
	return noos.OK
}

func (d *Driver) SPIWrite(ph noos.Phy, reg uint32, val uint32) int32 {
	if reg > 0x3FF || val > 0xFF {
		return noos.EINVAL
	}
	return state(ph).write(uint16(reg), uint8(val))
}
