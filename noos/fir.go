package noos

// MaxFIRCoefficients is the capacity of a FIR coefficient array.
const MaxFIRCoefficients = 128

// RxFIRConfig is AD9361_RXFIRConfig.
type RxFIRConfig struct {
	Rx          uint32
	RxGain      int32
	RxDec       uint32
	RxCoef      [MaxFIRCoefficients]int16
	RxCoefSize  uint8
	RxPathClks  [6]uint32
	RxBandwidth uint32
}

// TxFIRConfig is AD9361_TXFIRConfig.
type TxFIRConfig struct {
	Tx          uint32
	TxGain      int32
	TxInt       uint32
	TxCoef      [MaxFIRCoefficients]int16
	TxCoefSize  uint8
	TxPathClks  [6]uint32
	TxBandwidth uint32
}

// RFRSSI is struct rf_rssi as filled by ad9361_get_rx_rssi.
type RFRSSI struct {
	Ant        uint32
	Symbol     uint32
	Preamble   uint32
	Multiplier int32
	Duration   uint8
}

// BistMode selects where the built-in self test injects its pattern.
type BistMode uint32

const (
	BistDisable BistMode = iota
	BistInjTx
	BistInjRx
)
