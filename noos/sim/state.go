package sim

import (
	"unsafe"

	"github.com/wippyai/ad936x/noos"
)

// Heap blocks requested by Init, in allocation order.
const (
	phyBlockSize   = 512
	pdataBlockSize = 768
	clkBlockSize   = 512

	// HeapWords is the heap Init consumes, in 4-byte words.
	HeapWords = (phyBlockSize + pdataBlockSize + clkBlockSize) / 4
)

// Register map subset.
const (
	regSPIConf        = 0x000
	regInputSelect    = 0x004
	regRxClkDataDelay = 0x006
	regTxClkDataDelay = 0x007
	regTemperature    = 0x00E
	regENSMConfig     = 0x017
	regProductID      = 0x037
	regLVDSBiasCtrl   = 0x03C
	regBBPLLLock      = 0x05E
	regTxAtten1Low    = 0x073
	regTxAtten1High   = 0x074
	regTxAtten2Low    = 0x075
	regTxAtten2High   = 0x076
	regAGCConfig1     = 0x0FA
	regRx1Gain        = 0x109
	regRx2Gain        = 0x10C
	regRx1RSSI        = 0x1A7
	regRx2RSSI        = 0x1A9
	regRxSynthLock    = 0x247
	regTxSynthLock    = 0x287
	regBistConfig     = 0x3F4
	regObserveConfig  = 0x3F5
)

const (
	softReset     = 0x81
	productIDMask = 0xF8
	productID     = 0x08
	revMask       = 0x07
	bbpllLocked   = 0x80
	synthLocked   = 0x02
	ensmStateMask = 0x0F

	ensmAlert = 5
	ensmFDD   = 10
	ensmErr   = 0xFF

	lockPolls   = 100
	lockPollUs  = 10
	resetHoldMs = 1
)

// Limits enforced by the accessors.
const (
	maxTxAttenMdB   = 89750
	txAttenStepMdB  = 250
	minLoHz         = 70000000
	maxLoHz         = 6000000000
	minRfBwHz       = 200000
	maxRfBwHz       = 56000000
	minSampleRateHz = 520833
	maxSampleRateHz = 61440000
	minRxGainDB     = -3
	maxRxGainDB     = 71
	maxRxPort       = 11
	maxTxPort       = 1
	maxGainMode     = 3
	maxLoopback     = 2
	rssiPerCount    = 25
	rssiMultiplier  = 100
	mgcMode         = 0
)

// phy is the ad9361_rf_phy block. It refers back to the platform hooks
// and the descriptors so accessors need nothing but the Phy handle.
type phy struct {
	env    *noos.Env
	spi    *noos.SPIDesc
	resetb *noos.GPIODesc
	sync   *noos.GPIODesc
	calSw1 *noos.GPIODesc
	calSw2 *noos.GPIODesc
	pdata  *platformData
	clk    *clockTree

	devSel  noos.DevID
	rev     uint8
	rx2tx2  bool
	fdd     bool
	removed bool
}

// platformData holds accessor state the part does not report back.
type platformData struct {
	rxLO, txLO            uint64
	rxBandwidth           uint32
	txBandwidth           uint32
	rxPort, txPort        uint32
	rxGain                [2]int32
	gainMode              [2]uint8
	rxLOExt, txLOExt      uint8
	txLOPowerdown         uint8
	rxFIRLoaded           bool
	txFIRLoaded           bool
	rxFIREnabled          bool
	txFIREnabled          bool
	muted                 bool
	mutedAtten            [2]uint32
	bist                  noos.BistMode
	loopback              int32
	toneMode              noos.BistMode
	toneFreqHz, toneLevel uint32
	toneMask              uint32
	rxFIR                 noos.RxFIRConfig
	txFIR                 noos.TxFIRConfig
}

// clockTree is the clock chain: BBPLL and the six path clocks per side.
// The last path clock is the baseband sample rate.
type clockTree struct {
	refClk uint32
	bbpll  uint64
	rx     [6]uint32
	tx     [6]uint32
}

// Each overlay must fit the block it is placed in.
var (
	_ [phyBlockSize - unsafe.Sizeof(phy{})]byte
	_ [pdataBlockSize - unsafe.Sizeof(platformData{})]byte
	_ [clkBlockSize - unsafe.Sizeof(clockTree{})]byte
)

func state(p noos.Phy) *phy {
	return (*phy)(p)
}

func (p *phy) channelOK(ch uint8) bool {
	return ch == 0 || (ch == 1 && p.rx2tx2)
}
