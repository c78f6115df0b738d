package sim

import (
	"github.com/wippyai/ad936x/noos"
)

func (d *Driver) SetRxRfGain(ph noos.Phy, ch uint8, gainDB int32) int32 {
	p := state(ph)
	if !p.channelOK(ch) || gainDB < minRxGainDB || gainDB > maxRxGainDB {
		return noos.EINVAL
	}
	if p.pdata.gainMode[ch] != mgcMode {
		return noos.EOPNOTSUPP
	}
	reg := uint16(regRx1Gain)
	if ch == 1 {
		reg = regRx2Gain
	}
	if rc := p.write(reg, uint8(gainDB-minRxGainDB)); rc != noos.OK {
		return rc
	}
	p.pdata.rxGain[ch] = gainDB
	return noos.OK
}

func (d *Driver) GetRxRfGain(ph noos.Phy, ch uint8, gainDB *int32) int32 {
	p := state(ph)
	if !p.channelOK(ch) {
		return noos.EINVAL
	}
	*gainDB = p.pdata.rxGain[ch]
	return noos.OK
}

func (d *Driver) SetRxRfBandwidth(ph noos.Phy, hz uint32) int32 {
	if hz < minRfBwHz || hz > maxRfBwHz {
		return noos.EINVAL
	}
	state(ph).pdata.rxBandwidth = hz
	return noos.OK
}

func (d *Driver) GetRxRfBandwidth(ph noos.Phy, hz *uint32) int32 {
	*hz = state(ph).pdata.rxBandwidth
	return noos.OK
}

// SetRxSamplingFreq retunes the shared clock chain, so the TX rate
// follows.
func (d *Driver) SetRxSamplingFreq(ph noos.Phy, hz uint32) int32 {
	return state(ph).setSampleRate(hz)
}

func (d *Driver) GetRxSamplingFreq(ph noos.Phy, hz *uint32) int32 {
	*hz = state(ph).clk.rx[5]
	return noos.OK
}

func (d *Driver) SetRxLoFreq(ph noos.Phy, hz uint64) int32 {
	if !loInRange(hz) {
		return noos.EINVAL
	}
	state(ph).pdata.rxLO = hz
	return noos.OK
}

func (d *Driver) GetRxLoFreq(ph noos.Phy, hz *uint64) int32 {
	*hz = state(ph).pdata.rxLO
	return noos.OK
}

func (d *Driver) SetRxLoIntExt(ph noos.Phy, intExt uint8) int32 {
	if intExt > 1 {
		return noos.EINVAL
	}
	state(ph).pdata.rxLOExt = intExt
	return noos.OK
}

func (d *Driver) GetRxRssi(ph noos.Phy, ch uint8, rssi *noos.RFRSSI) int32 {
	p := state(ph)
	if !p.channelOK(ch) {
		return noos.EINVAL
	}
	reg := uint16(regRx1RSSI)
	if ch == 1 {
		reg = regRx2RSSI
	}
	v, rc := p.read(reg)
	if rc != noos.OK {
		return rc
	}
	*rssi = noos.RFRSSI{
		Ant:        uint32(ch) + 1,
		Symbol:     uint32(v) * rssiPerCount,
		Preamble:   uint32(v) * rssiPerCount,
		Multiplier: rssiMultiplier,
		Duration:   1,
	}
	return noos.OK
}

func (d *Driver) SetRxGainControlMode(ph noos.Phy, ch uint8, mode uint8) int32 {
	p := state(ph)
	if !p.channelOK(ch) || mode > maxGainMode {
		return noos.EINVAL
	}
	modes := p.pdata.gainMode
	modes[ch] = mode
	if rc := p.write(regAGCConfig1, gainModeBits(modes)); rc != noos.OK {
		return rc
	}
	p.pdata.gainMode = modes
	return noos.OK
}

func (d *Driver) GetRxGainControlMode(ph noos.Phy, ch uint8, mode *uint8) int32 {
	p := state(ph)
	if !p.channelOK(ch) {
		return noos.EINVAL
	}
	*mode = p.pdata.gainMode[ch]
	return noos.OK
}

func (d *Driver) SetRxFirConfig(ph noos.Phy, cfg noos.RxFIRConfig) int32 {
	if !firShapeOK(cfg.Rx, cfg.RxCoefSize, cfg.RxGain, cfg.RxDec) {
		return noos.EINVAL
	}
	pd := state(ph).pdata
	pd.rxFIR = cfg
	pd.rxFIRLoaded = true
	return noos.OK
}

func (d *Driver) SetRxFirEnDis(ph noos.Phy, en uint8) int32 {
	pd := state(ph).pdata
	if en != 0 && !pd.rxFIRLoaded {
		return noos.EINVAL
	}
	pd.rxFIREnabled = en != 0
	return noos.OK
}

func (d *Driver) GetRxFirEnDis(ph noos.Phy, en *uint8) int32 {
	*en = boolByte(state(ph).pdata.rxFIREnabled)
	return noos.OK
}

func (d *Driver) SetRxRfPortInput(ph noos.Phy, mode uint32) int32 {
	if mode > maxRxPort {
		return noos.EINVAL
	}
	p := state(ph)
	if rc := p.write(regInputSelect, portSelect(mode, p.pdata.txPort)); rc != noos.OK {
		return rc
	}
	p.pdata.rxPort = mode
	return noos.OK
}

func (d *Driver) GetRxRfPortInput(ph noos.Phy, mode *uint32) int32 {
	*mode = state(ph).pdata.rxPort
	return noos.OK
}

// setSampleRate scales both path clock chains so the final stage runs
// at hz.
func (p *phy) setSampleRate(hz uint32) int32 {
	if hz < minSampleRateHz || hz > maxSampleRateHz {
		return noos.EINVAL
	}
	clk := p.clk
	for _, chain := range []*[6]uint32{&clk.rx, &clk.tx} {
		old := chain[5]
		if old == 0 {
			chain[5] = hz
			continue
		}
		for i := range chain {
			chain[i] = uint32(uint64(chain[i]) * uint64(hz) / uint64(old))
		}
		chain[5] = hz
	}
	clk.bbpll = uint64(clk.rx[0])
	return noos.OK
}

// firShapeOK applies the filter constraints of the part: one or both
// channels, up to 128 taps in multiples of 16, gain of -12, -6, 0 or
// +6 dB and a rate change of 1, 2 or 4.
func firShapeOK(chans uint32, taps uint8, gain int32, rate uint32) bool {
	if chans == 0 || chans > 3 {
		return false
	}
	if taps == 0 || taps > noos.MaxFIRCoefficients || taps%16 != 0 {
		return false
	}
	switch gain {
	case -12, -6, 0, 6:
	default:
		return false
	}
	switch rate {
	case 1, 2, 4:
	default:
		return false
	}
	return true
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
