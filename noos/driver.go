package noos

import "unsafe"

// Phy is the driver's opaque struct ad9361_rf_phy pointer.
type Phy unsafe.Pointer

// Driver is the raw ad9361 API. Each method mirrors one ad9361_* entry
// point: statuses are int32 with 0 meaning success, and out-values are
// written through pointers.
//
// Implementations are not reentrant and keep pointers into the params
// block passed to Init until Remove.
type Driver interface {
	// Init allocates driver state through env, stores it in *phy and
	// returns a status.
	Init(env *Env, phy *Phy, params *InitParam) int32
	// Remove releases the state created by Init.
	Remove(phy Phy) int32

	// RX chain
	SetRxRfGain(phy Phy, ch uint8, gainDB int32) int32
	GetRxRfGain(phy Phy, ch uint8, gainDB *int32) int32
	SetRxRfBandwidth(phy Phy, hz uint32) int32
	GetRxRfBandwidth(phy Phy, hz *uint32) int32
	SetRxSamplingFreq(phy Phy, hz uint32) int32
	GetRxSamplingFreq(phy Phy, hz *uint32) int32
	SetRxLoFreq(phy Phy, hz uint64) int32
	GetRxLoFreq(phy Phy, hz *uint64) int32
	SetRxLoIntExt(phy Phy, intExt uint8) int32
	GetRxRssi(phy Phy, ch uint8, rssi *RFRSSI) int32
	SetRxGainControlMode(phy Phy, ch uint8, mode uint8) int32
	GetRxGainControlMode(phy Phy, ch uint8, mode *uint8) int32
	SetRxFirConfig(phy Phy, cfg RxFIRConfig) int32
	SetRxFirEnDis(phy Phy, en uint8) int32
	GetRxFirEnDis(phy Phy, en *uint8) int32
	SetRxRfPortInput(phy Phy, mode uint32) int32
	GetRxRfPortInput(phy Phy, mode *uint32) int32

	// TX chain
	SetTxAttenuation(phy Phy, ch uint8, mdB uint32) int32
	GetTxAttenuation(phy Phy, ch uint8, mdB *uint32) int32
	SetTxRfBandwidth(phy Phy, hz uint32) int32
	GetTxRfBandwidth(phy Phy, hz *uint32) int32
	SetTxSamplingFreq(phy Phy, hz uint32) int32
	GetTxSamplingFreq(phy Phy, hz *uint32) int32
	SetTxLoFreq(phy Phy, hz uint64) int32
	GetTxLoFreq(phy Phy, hz *uint64) int32
	SetTxLoIntExt(phy Phy, intExt uint8) int32
	SetTxFirConfig(phy Phy, cfg TxFIRConfig) int32
	SetTxFirEnDis(phy Phy, en uint8) int32
	GetTxFirEnDis(phy Phy, en *uint8) int32
	SetTxRfPortOutput(phy Phy, mode uint32) int32
	GetTxRfPortOutput(phy Phy, mode *uint32) int32
	TxLoPowerdown(phy Phy, option uint8) int32
	GetTxLoPower(phy Phy, option *uint8) int32

	// BIST
	BistPrbs(phy Phy, mode BistMode) int32
	GetBistPrbs(phy Phy, mode *BistMode)
	BistLoopback(phy Phy, mode int32) int32
	GetBistLoopback(phy Phy, mode *int32)
	BistTone(phy Phy, mode BistMode, freqHz, levelDB, mask uint32) int32

	// Misc
	EnsmGetState(phy Phy) uint8
	EnsmForceState(phy Phy, state uint8)
	GetTemperature(phy Phy, milliC *int32) int32
	TxMute(phy Phy, state uint32) int32
	SPIWrite(phy Phy, reg uint32, val uint32) int32
}
