package ad936x

import (
	"fmt"

	"github.com/wippyai/ad936x/noos"
)

// TxRfPortSelection selects the TX RF output.
type TxRfPortSelection uint32

const (
	TXA TxRfPortSelection = iota
	TXB
)

func txPortFromRaw(v uint32) TxRfPortSelection {
	if v == 0 {
		return TXA
	}
	return TXB
}

func (p TxRfPortSelection) String() string {
	if p == TXA {
		return "TXA"
	}
	return "TXB"
}

// RxRfPortSelection selects the RX RF input pins.
type RxRfPortSelection uint32

const (
	ABalanced RxRfPortSelection = iota // RX1A and RX2A, balanced
	BBalanced                          // RX1B and RX2B, balanced
	CBalanced                          // RX1C and RX2C, balanced
	AN                                 // RX1A_N and RX2A_N
	AP                                 // RX1A_P and RX2A_P
	BN                                 // RX1B_N and RX2B_N
	BP                                 // RX1B_P and RX2B_P
	CN                                 // RX1C_N and RX2C_N
	CP                                 // RX1C_P and RX2C_P
	TxMon1                             // TX monitor 1
	TxMon2                             // TX monitor 2
	TxMon1And2                         // both TX monitors
)

var rxPortNames = [...]string{
	"A_BALANCED", "B_BALANCED", "C_BALANCED",
	"A_N", "A_P", "B_N", "B_P", "C_N", "C_P",
	"TX_MON1", "TX_MON2", "TX_MON1_2",
}

func rxPortFromRaw(v uint32) RxRfPortSelection {
	if v > uint32(TxMon1And2) {
		return ABalanced
	}
	return RxRfPortSelection(v)
}

func (p RxRfPortSelection) String() string {
	if int(p) < len(rxPortNames) {
		return rxPortNames[p]
	}
	return fmt.Sprintf("RxRfPortSelection(%d)", uint32(p))
}

// EnsmState is the Enable State Machine state.
type EnsmState uint8

const (
	SleepOrWait EnsmState = 0    // clocks or BBPLL disabled, or clocks enabled
	Alert       EnsmState = 5    // synthesizers enabled
	Tx          EnsmState = 6    // TX signal chain enabled
	TxFlush     EnsmState = 7    // TX digital block flush
	Rx          EnsmState = 8    // RX signal chain enabled
	RxFlush     EnsmState = 9    // RX digital block flush
	Fdd         EnsmState = 10   // TX and RX signal chains enabled
	FddFlush    EnsmState = 11   // flush all digital signal paths
	EnsmUnknown EnsmState = 0xFF // anything else
)

func ensmFromRaw(v uint8) EnsmState {
	switch s := EnsmState(v); s {
	case SleepOrWait, Alert, Tx, TxFlush, Rx, RxFlush, Fdd, FddFlush:
		return s
	default:
		return EnsmUnknown
	}
}

func (s EnsmState) String() string {
	switch s {
	case SleepOrWait:
		return "SleepOrWait"
	case Alert:
		return "Alert"
	case Tx:
		return "Tx"
	case TxFlush:
		return "TxFlush"
	case Rx:
		return "Rx"
	case RxFlush:
		return "RxFlush"
	case Fdd:
		return "Fdd"
	case FddFlush:
		return "FddFlush"
	default:
		return "Unknown"
	}
}

// InternalExternalLO selects the LO source.
type InternalExternalLO uint8

const (
	InternalLO InternalExternalLO = iota
	ExternalLO
)

func (lo InternalExternalLO) String() string {
	if lo == ExternalLO {
		return "External"
	}
	return "Internal"
}

// LOPowerStatus is the TX LO power state. The raw value passed to the
// driver is a power-down flag, so On is 0.
type LOPowerStatus uint8

const (
	LOOn  LOPowerStatus = 0
	LOOff LOPowerStatus = 1
)

// loPowerFromRaw decodes the driver's report, which uses the opposite
// sense from the power-down flag: 1 means running. Other nonzero values
// read as running.
func loPowerFromRaw(v uint8) LOPowerStatus {
	if v == 0 {
		return LOOff
	}
	return LOOn
}

func (p LOPowerStatus) String() string {
	if p == LOOff {
		return "Off"
	}
	return "On"
}

// BistMode selects where the built-in self test injects its pattern.
type BistMode uint32

const (
	BistDisable  = BistMode(noos.BistDisable)
	BistInjectTx = BistMode(noos.BistInjTx)
	BistInjectRx = BistMode(noos.BistInjRx)
)

func (m BistMode) String() string {
	switch m {
	case BistDisable:
		return "Disable"
	case BistInjectTx:
		return "InjectTx"
	case BistInjectRx:
		return "InjectRx"
	default:
		return fmt.Sprintf("BistMode(%d)", uint32(m))
	}
}

// LoopbackMode enables the internal TX to RX loopback.
type LoopbackMode int32

const (
	LoopbackDisabled LoopbackMode = iota
	LoopbackEnabled
)

func loopbackFromRaw(v int32) LoopbackMode {
	if v == 1 {
		return LoopbackEnabled
	}
	return LoopbackDisabled
}

func (m LoopbackMode) String() string {
	if m == LoopbackEnabled {
		return "Enabled"
	}
	return "Disabled"
}

// RfGainControlMode is the RX gain control mode.
type RfGainControlMode uint8

const (
	Manual RfGainControlMode = iota
	FastAttackAgc
	SlowAttackAgc
	HybridAgc
)

func gainModeFromRaw(v uint8) RfGainControlMode {
	if v > uint8(HybridAgc) {
		return Manual
	}
	return RfGainControlMode(v)
}

func (m RfGainControlMode) String() string {
	switch m {
	case Manual:
		return "Manual"
	case FastAttackAgc:
		return "FastAttackAgc"
	case SlowAttackAgc:
		return "SlowAttackAgc"
	case HybridAgc:
		return "HybridAgc"
	default:
		return fmt.Sprintf("RfGainControlMode(%d)", uint8(m))
	}
}

// TxState is the argument to TxMute.
type TxState bool

const (
	Unmute TxState = false
	Mute   TxState = true
)

func temperatureFromRaw(milliC int32) float32 {
	return float32(milliC) / 1000
}

func rssiFromRaw(r noos.RFRSSI) float32 {
	// 0.25 dB per LSB, already scaled by 25
	return float32(r.Symbol) / -100
}

func boolFromRaw(v uint8) bool {
	return v != 0
}

func boolToRaw(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
