package ad936x

import "github.com/wippyai/ad936x/noos"

func loIntExtFromRaw(v uint8) InternalExternalLO { return InternalExternalLO(v) }
func bistModeFromRaw(v noos.BistMode) BistMode   { return BistMode(v) }

var (
	rxRfGain = channelProperty[int32, int32]{
		name:  "rx_rf_gain",
		codec: identity[int32](),
		set:   noos.Driver.SetRxRfGain,
		get:   noos.Driver.GetRxRfGain,
	}
	rxRfBandwidth = property[uint32, uint32]{
		name:  "rx_rf_bandwidth",
		codec: identity[uint32](),
		set:   noos.Driver.SetRxRfBandwidth,
		get:   noos.Driver.GetRxRfBandwidth,
	}
	rxSamplingFreq = property[uint32, uint32]{
		name:  "rx_sampling_freq",
		codec: identity[uint32](),
		set:   noos.Driver.SetRxSamplingFreq,
		get:   noos.Driver.GetRxSamplingFreq,
	}
	rxLoFreq = property[uint64, uint64]{
		name:  "rx_lo_freq",
		codec: identity[uint64](),
		set:   noos.Driver.SetRxLoFreq,
		get:   noos.Driver.GetRxLoFreq,
	}
	rxLoIntExt = property[uint8, InternalExternalLO]{
		name:  "rx_lo_int_ext",
		codec: convert(loIntExtFromRaw),
		set:   noos.Driver.SetRxLoIntExt,
	}
	rxRssi = channelProperty[noos.RFRSSI, float32]{
		name:  "rx_rssi",
		codec: codec[noos.RFRSSI, float32]{fromRaw: rssiFromRaw},
		get:   noos.Driver.GetRxRssi,
	}
	rxGainControlMode = channelProperty[uint8, RfGainControlMode]{
		name:  "rx_gain_control_mode",
		codec: convert(gainModeFromRaw),
		set:   noos.Driver.SetRxGainControlMode,
		get:   noos.Driver.GetRxGainControlMode,
	}
	rxFirConfig = property[noos.RxFIRConfig, RxFIR]{
		name:  "rx_fir_config",
		codec: codec[noos.RxFIRConfig, RxFIR]{toRaw: RxFIR.Config},
		set:   noos.Driver.SetRxFirConfig,
	}
	rxFirEnDis = property[uint8, bool]{
		name:  "rx_fir_en_dis",
		codec: boolCodec,
		set:   noos.Driver.SetRxFirEnDis,
		get:   noos.Driver.GetRxFirEnDis,
	}
	rxRfPortInput = property[uint32, RxRfPortSelection]{
		name:  "rx_rf_port_input",
		codec: convert(rxPortFromRaw),
		set:   noos.Driver.SetRxRfPortInput,
		get:   noos.Driver.GetRxRfPortInput,
	}

	txAttenuation = channelProperty[uint32, uint32]{
		name:  "tx_attenuation",
		codec: identity[uint32](),
		set:   noos.Driver.SetTxAttenuation,
		get:   noos.Driver.GetTxAttenuation,
	}
	txRfBandwidth = property[uint32, uint32]{
		name:  "tx_rf_bandwidth",
		codec: identity[uint32](),
		set:   noos.Driver.SetTxRfBandwidth,
		get:   noos.Driver.GetTxRfBandwidth,
	}
	txSamplingFreq = property[uint32, uint32]{
		name:  "tx_sampling_freq",
		codec: identity[uint32](),
		set:   noos.Driver.SetTxSamplingFreq,
		get:   noos.Driver.GetTxSamplingFreq,
	}
	txLoFreq = property[uint64, uint64]{
		name:  "tx_lo_freq",
		codec: identity[uint64](),
		set:   noos.Driver.SetTxLoFreq,
		get:   noos.Driver.GetTxLoFreq,
	}
	txLoIntExt = property[uint8, InternalExternalLO]{
		name:  "tx_lo_int_ext",
		codec: convert(loIntExtFromRaw),
		set:   noos.Driver.SetTxLoIntExt,
	}
	txFirConfig = property[noos.TxFIRConfig, TxFIR]{
		name:  "tx_fir_config",
		codec: codec[noos.TxFIRConfig, TxFIR]{toRaw: TxFIR.Config},
		set:   noos.Driver.SetTxFirConfig,
	}
	txFirEnDis = property[uint8, bool]{
		name:  "tx_fir_en_dis",
		codec: boolCodec,
		set:   noos.Driver.SetTxFirEnDis,
		get:   noos.Driver.GetTxFirEnDis,
	}
	txRfPortOutput = property[uint32, TxRfPortSelection]{
		name:  "tx_rf_port_output",
		codec: convert(txPortFromRaw),
		set:   noos.Driver.SetTxRfPortOutput,
		get:   noos.Driver.GetTxRfPortOutput,
	}
	txLoPower = property[uint8, LOPowerStatus]{
		name:  "tx_lo_power",
		codec: convert(loPowerFromRaw),
		set:   noos.Driver.TxLoPowerdown,
		get:   noos.Driver.GetTxLoPower,
	}
	txMute = property[uint32, TxState]{
		name:  "tx_mute",
		codec: muteCodec,
		set:   noos.Driver.TxMute,
	}

	bistPrbs = property[noos.BistMode, BistMode]{
		name:  "bist_prbs",
		codec: convert(bistModeFromRaw),
		set:   noos.Driver.BistPrbs,
		peek:  noos.Driver.GetBistPrbs,
	}
	bistLoopback = property[int32, LoopbackMode]{
		name:  "bist_loopback",
		codec: convert(loopbackFromRaw),
		set:   noos.Driver.BistLoopback,
		peek:  noos.Driver.GetBistLoopback,
	}

	ensmState = property[uint8, EnsmState]{
		name:  "ensm_state",
		codec: convert(ensmFromRaw),
		value: noos.Driver.EnsmGetState,
	}
	temperature = property[int32, float32]{
		name:  "temperature",
		codec: codec[int32, float32]{fromRaw: temperatureFromRaw},
		get:   noos.Driver.GetTemperature,
	}
)

// SetRxRfGain sets the RX gain of channel ch in dB. The channel must be
// in manual gain control mode.
func (d *Device[B, D, P]) SetRxRfGain(ch uint8, gainDB int32) error {
	return rxRfGain.apply(d.handle("set_rx_rf_gain"), ch, gainDB)
}

// GetRxRfGain returns the RX gain of channel ch in dB.
func (d *Device[B, D, P]) GetRxRfGain(ch uint8) (int32, error) {
	return rxRfGain.read(d.handle("get_rx_rf_gain"), ch)
}

// SetRxRfBandwidth sets the RX RF bandwidth in Hz.
func (d *Device[B, D, P]) SetRxRfBandwidth(hz uint32) error {
	return rxRfBandwidth.apply(d.handle("set_rx_rf_bandwidth"), hz)
}

func (d *Device[B, D, P]) GetRxRfBandwidth() (uint32, error) {
	return rxRfBandwidth.read(d.handle("get_rx_rf_bandwidth"))
}

// SetRxSamplingFreq sets the RX sample rate in Hz. The TX rate follows.
func (d *Device[B, D, P]) SetRxSamplingFreq(hz uint32) error {
	return rxSamplingFreq.apply(d.handle("set_rx_sampling_freq"), hz)
}

func (d *Device[B, D, P]) GetRxSamplingFreq() (uint32, error) {
	return rxSamplingFreq.read(d.handle("get_rx_sampling_freq"))
}

// SetRxLoFreq sets the RX LO frequency in Hz.
func (d *Device[B, D, P]) SetRxLoFreq(hz uint64) error {
	return rxLoFreq.apply(d.handle("set_rx_lo_freq"), hz)
}

func (d *Device[B, D, P]) GetRxLoFreq() (uint64, error) {
	return rxLoFreq.read(d.handle("get_rx_lo_freq"))
}

// SetRxLoIntExt selects the internal or an external RX LO.
func (d *Device[B, D, P]) SetRxLoIntExt(lo InternalExternalLO) error {
	return rxLoIntExt.apply(d.handle("set_rx_lo_int_ext"), lo)
}

// GetRxRssi returns the received signal strength of channel ch in dB.
func (d *Device[B, D, P]) GetRxRssi(ch uint8) (float32, error) {
	return rxRssi.read(d.handle("get_rx_rssi"), ch)
}

func (d *Device[B, D, P]) SetRxGainControlMode(ch uint8, mode RfGainControlMode) error {
	return rxGainControlMode.apply(d.handle("set_rx_gain_control_mode"), ch, mode)
}

func (d *Device[B, D, P]) GetRxGainControlMode(ch uint8) (RfGainControlMode, error) {
	return rxGainControlMode.read(d.handle("get_rx_gain_control_mode"), ch)
}

// SetRxFirConfig loads an RX FIR filter. It takes effect once enabled
// with SetRxFirEnDis.
func (d *Device[B, D, P]) SetRxFirConfig(fir RxFIR) error {
	return rxFirConfig.apply(d.handle("set_rx_fir_config"), fir)
}

func (d *Device[B, D, P]) SetRxFirEnDis(enable bool) error {
	return rxFirEnDis.apply(d.handle("set_rx_fir_en_dis"), enable)
}

func (d *Device[B, D, P]) GetRxFirEnDis() (bool, error) {
	return rxFirEnDis.read(d.handle("get_rx_fir_en_dis"))
}

func (d *Device[B, D, P]) SetRxRfPortInput(port RxRfPortSelection) error {
	return rxRfPortInput.apply(d.handle("set_rx_rf_port_input"), port)
}

func (d *Device[B, D, P]) GetRxRfPortInput() (RxRfPortSelection, error) {
	return rxRfPortInput.read(d.handle("get_rx_rf_port_input"))
}

// SetTxAttenuation sets the TX attenuation of channel ch in mdB.
func (d *Device[B, D, P]) SetTxAttenuation(ch uint8, mdB uint32) error {
	return txAttenuation.apply(d.handle("set_tx_attenuation"), ch, mdB)
}

// GetTxAttenuation returns the TX attenuation of channel ch in mdB.
func (d *Device[B, D, P]) GetTxAttenuation(ch uint8) (uint32, error) {
	return txAttenuation.read(d.handle("get_tx_attenuation"), ch)
}

func (d *Device[B, D, P]) SetTxRfBandwidth(hz uint32) error {
	return txRfBandwidth.apply(d.handle("set_tx_rf_bandwidth"), hz)
}

func (d *Device[B, D, P]) GetTxRfBandwidth() (uint32, error) {
	return txRfBandwidth.read(d.handle("get_tx_rf_bandwidth"))
}

// SetTxSamplingFreq sets the TX sample rate in Hz. The RX rate follows.
func (d *Device[B, D, P]) SetTxSamplingFreq(hz uint32) error {
	return txSamplingFreq.apply(d.handle("set_tx_sampling_freq"), hz)
}

func (d *Device[B, D, P]) GetTxSamplingFreq() (uint32, error) {
	return txSamplingFreq.read(d.handle("get_tx_sampling_freq"))
}

func (d *Device[B, D, P]) SetTxLoFreq(hz uint64) error {
	return txLoFreq.apply(d.handle("set_tx_lo_freq"), hz)
}

func (d *Device[B, D, P]) GetTxLoFreq() (uint64, error) {
	return txLoFreq.read(d.handle("get_tx_lo_freq"))
}

func (d *Device[B, D, P]) SetTxLoIntExt(lo InternalExternalLO) error {
	return txLoIntExt.apply(d.handle("set_tx_lo_int_ext"), lo)
}

func (d *Device[B, D, P]) SetTxFirConfig(fir TxFIR) error {
	return txFirConfig.apply(d.handle("set_tx_fir_config"), fir)
}

func (d *Device[B, D, P]) SetTxFirEnDis(enable bool) error {
	return txFirEnDis.apply(d.handle("set_tx_fir_en_dis"), enable)
}

func (d *Device[B, D, P]) GetTxFirEnDis() (bool, error) {
	return txFirEnDis.read(d.handle("get_tx_fir_en_dis"))
}

func (d *Device[B, D, P]) SetTxRfPortOutput(port TxRfPortSelection) error {
	return txRfPortOutput.apply(d.handle("set_tx_rf_port_output"), port)
}

func (d *Device[B, D, P]) GetTxRfPortOutput() (TxRfPortSelection, error) {
	return txRfPortOutput.read(d.handle("get_tx_rf_port_output"))
}

// TxLoPowerdown powers the TX LO up (LOOn) or down (LOOff).
func (d *Device[B, D, P]) TxLoPowerdown(status LOPowerStatus) error {
	return txLoPower.apply(d.handle("tx_lo_powerdown"), status)
}

// GetTxLoPower reports whether the TX LO is running.
func (d *Device[B, D, P]) GetTxLoPower() (LOPowerStatus, error) {
	return txLoPower.read(d.handle("get_tx_lo_power"))
}

// TxMute mutes the transmitter, restoring the previous attenuation on
// unmute.
func (d *Device[B, D, P]) TxMute(state TxState) error {
	return txMute.apply(d.handle("tx_mute"), state)
}

// BistPrbs injects a pseudo-random bit sequence into the TX or RX path.
func (d *Device[B, D, P]) BistPrbs(mode BistMode) error {
	return bistPrbs.apply(d.handle("bist_prbs"), mode)
}

func (d *Device[B, D, P]) GetBistPrbs() BistMode {
	return bistPrbs.readInfallible(d.handle("get_bist_prbs"))
}

// BistLoopback routes TX data back to RX inside the device.
func (d *Device[B, D, P]) BistLoopback(mode LoopbackMode) error {
	return bistLoopback.apply(d.handle("bist_loopback"), mode)
}

func (d *Device[B, D, P]) GetBistLoopback() LoopbackMode {
	return bistLoopback.readInfallible(d.handle("get_bist_loopback"))
}

// BistTone injects a tone of freqHz at levelDB below full scale. mask
// selects the I/Q outputs to silence.
func (d *Device[B, D, P]) BistTone(mode BistMode, freqHz, levelDB, mask uint32) error {
	h := d.handle("bist_tone")
	return h.status("bist_tone", h.drv.BistTone(h.phy, noos.BistMode(mode), freqHz, levelDB, mask))
}

// EnsmGetState returns the Enable State Machine state.
func (d *Device[B, D, P]) EnsmGetState() EnsmState {
	return ensmState.readValue(d.handle("ensm_get_state"))
}

// GetTemperature returns the die temperature in degrees Celsius.
func (d *Device[B, D, P]) GetTemperature() (float32, error) {
	return temperature.read(d.handle("get_temperature"))
}
