package sim

import (
	"github.com/wippyai/ad936x/noos"
)

func (d *Driver) SetTxAttenuation(ph noos.Phy, ch uint8, mdB uint32) int32 {
	p := state(ph)
	if !p.channelOK(ch) {
		return noos.EINVAL
	}
	return p.writeAtten(ch, mdB)
}

func (d *Driver) GetTxAttenuation(ph noos.Phy, ch uint8, mdB *uint32) int32 {
	p := state(ph)
	if !p.channelOK(ch) {
		return noos.EINVAL
	}
	v, rc := p.readAtten(ch)
	if rc != noos.OK {
		return rc
	}
	*mdB = v
	return noos.OK
}

// writeAtten stores the attenuation as a 9-bit count of 0.25 dB steps.
func (p *phy) writeAtten(ch uint8, mdB uint32) int32 {
	if mdB > maxTxAttenMdB {
		return noos.EINVAL
	}
	lo, hi := attenRegs(ch)
	steps := mdB / txAttenStepMdB
	if rc := p.write(lo, uint8(steps)); rc != noos.OK {
		return rc
	}
	return p.write(hi, uint8(steps>>8)&1)
}

func (p *phy) readAtten(ch uint8) (uint32, int32) {
	lo, hi := attenRegs(ch)
	l, rc := p.read(lo)
	if rc != noos.OK {
		return 0, rc
	}
	h, rc := p.read(hi)
	if rc != noos.OK {
		return 0, rc
	}
	return (uint32(l) | uint32(h&1)<<8) * txAttenStepMdB, noos.OK
}

func attenRegs(ch uint8) (lo, hi uint16) {
	if ch == 1 {
		return regTxAtten2Low, regTxAtten2High
	}
	return regTxAtten1Low, regTxAtten1High
}

func (d *Driver) SetTxRfBandwidth(ph noos.Phy, hz uint32) int32 {
	if hz < minRfBwHz || hz > maxRfBwHz {
		return noos.EINVAL
	}
	state(ph).pdata.txBandwidth = hz
	return noos.OK
}

func (d *Driver) GetTxRfBandwidth(ph noos.Phy, hz *uint32) int32 {
	*hz = state(ph).pdata.txBandwidth
	return noos.OK
}

func (d *Driver) SetTxSamplingFreq(ph noos.Phy, hz uint32) int32 {
	return state(ph).setSampleRate(hz)
}

func (d *Driver) GetTxSamplingFreq(ph noos.Phy, hz *uint32) int32 {
	*hz = state(ph).clk.tx[5]
	return noos.OK
}

func (d *Driver) SetTxLoFreq(ph noos.Phy, hz uint64) int32 {
	if !loInRange(hz) {
		return noos.EINVAL
	}
	state(ph).pdata.txLO = hz
	return noos.OK
}

func (d *Driver) GetTxLoFreq(ph noos.Phy, hz *uint64) int32 {
	*hz = state(ph).pdata.txLO
	return noos.OK
}

func (d *Driver) SetTxLoIntExt(ph noos.Phy, intExt uint8) int32 {
	if intExt > 1 {
		return noos.EINVAL
	}
	state(ph).pdata.txLOExt = intExt
	return noos.OK
}

func (d *Driver) SetTxFirConfig(ph noos.Phy, cfg noos.TxFIRConfig) int32 {
	if !firShapeOK(cfg.Tx, cfg.TxCoefSize, cfg.TxGain, cfg.TxInt) {
		return noos.EINVAL
	}
	pd := state(ph).pdata
	pd.txFIR = cfg
	pd.txFIRLoaded = true
	return noos.OK
}

func (d *Driver) SetTxFirEnDis(ph noos.Phy, en uint8) int32 {
	pd := state(ph).pdata
	if en != 0 && !pd.txFIRLoaded {
		return noos.EINVAL
	}
	pd.txFIREnabled = en != 0
	return noos.OK
}

func (d *Driver) GetTxFirEnDis(ph noos.Phy, en *uint8) int32 {
	*en = boolByte(state(ph).pdata.txFIREnabled)
	return noos.OK
}

func (d *Driver) SetTxRfPortOutput(ph noos.Phy, mode uint32) int32 {
	if mode > maxTxPort {
		return noos.EINVAL
	}
	p := state(ph)
	if rc := p.write(regInputSelect, portSelect(p.pdata.rxPort, mode)); rc != noos.OK {
		return rc
	}
	p.pdata.txPort = mode
	return noos.OK
}

func (d *Driver) GetTxRfPortOutput(ph noos.Phy, mode *uint32) int32 {
	*mode = state(ph).pdata.txPort
	return noos.OK
}

// TxLoPowerdown takes a power-down flag: 0 keeps the LO running.
func (d *Driver) TxLoPowerdown(ph noos.Phy, option uint8) int32 {
	state(ph).pdata.txLOPowerdown = option
	return noos.OK
}

// GetTxLoPower reports the opposite sense of TxLoPowerdown: 1 while the
// LO is running.
func (d *Driver) GetTxLoPower(ph noos.Phy, option *uint8) int32 {
	*option = boolByte(state(ph).pdata.txLOPowerdown == 0)
	return noos.OK
}

// TxMute drives both channels to full attenuation and restores the
// previous settings on unmute.
func (d *Driver) TxMute(ph noos.Phy, mute uint32) int32 {
	p := state(ph)
	pd := p.pdata
	if (mute != 0) == pd.muted {
		return noos.OK
	}
	for ch := uint8(0); ch < 2; ch++ {
		if !p.channelOK(ch) {
			continue
		}
		target := pd.mutedAtten[ch]
		if mute != 0 {
			saved, rc := p.readAtten(ch)
			if rc != noos.OK {
				return rc
			}
			pd.mutedAtten[ch] = saved
			target = maxTxAttenMdB
		}
		if rc := p.writeAtten(ch, target); rc != noos.OK {
			return rc
		}
	}
	pd.muted = mute != 0
	return noos.OK
}
