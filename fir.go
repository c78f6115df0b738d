package ad936x

import (
	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/noos"
)

// Band pass, passband 3/20 fs to 1/4 fs. Used by both chains by default.
var defaultFIRCoefficients = [...]int16{
	-4, -6, -37, 35, 186, 86, -284, -315, 107, 219, -4, 271, 558,
	-307, -1182, -356, 658, 157, 207, 1648, 790, -2525, -2553, 748,
	865, -476, 3737, 6560, -3583, -14731, -5278, 14819, 14819,
	-5278, -14731, -3583, 6560, 3737, -476, 865, 748, -2553, -2525,
	790, 1648, 207, 157, 658, -356, -1182, -307, 558, 271, -4, 219,
	107, -315, -284, 86, 186, 35, -37, -6, -4,
}

// bothChannels selects RX1 and RX2 (or TX1 and TX2) in a FIR config.
const bothChannels = 3

func checkCoefficients(op string, c []int16) {
	if len(c) > noos.MaxFIRCoefficients {
		errors.Violate(errors.OutOfRange(errors.PhaseAccess, op, len(c), 0, noos.MaxFIRCoefficients))
	}
}

// RxFIR is an RX FIR filter configuration. The zero value is empty; use
// DefaultRxFIR for the reference filter.
type RxFIR struct {
	cfg noos.RxFIRConfig
}

// DefaultRxFIR returns the reference 64 tap RX filter with decimation 1
// and 0 dB gain, applied to both channels.
func DefaultRxFIR() RxFIR {
	f := RxFIR{cfg: noos.RxFIRConfig{Rx: bothChannels, RxGain: 0, RxDec: 1}}
	return f.WithCoefficients(defaultFIRCoefficients[:])
}

// WithGain returns f with the fixed gain set, in dB.
func (f RxFIR) WithGain(db int32) RxFIR {
	f.cfg.RxGain = db
	return f
}

// WithDecimation returns f with the decimation factor set.
func (f RxFIR) WithDecimation(dec uint32) RxFIR {
	f.cfg.RxDec = dec
	return f
}

// WithCoefficients returns f with the given taps. More than 128 taps
// panics.
func (f RxFIR) WithCoefficients(c []int16) RxFIR {
	checkCoefficients("rx_fir_coefficients", c)
	f.cfg.RxCoef = [noos.MaxFIRCoefficients]int16{}
	copy(f.cfg.RxCoef[:], c)
	f.cfg.RxCoefSize = uint8(len(c))
	return f
}

func (f RxFIR) Gain() int32       { return f.cfg.RxGain }
func (f RxFIR) Decimation() uint32 { return f.cfg.RxDec }

// Coefficients returns the active taps.
func (f RxFIR) Coefficients() []int16 {
	return f.cfg.RxCoef[:f.cfg.RxCoefSize]
}

// Config returns the driver representation.
func (f RxFIR) Config() noos.RxFIRConfig { return f.cfg }

// TxFIR is a TX FIR filter configuration. The zero value is empty; use
// DefaultTxFIR for the reference filter.
type TxFIR struct {
	cfg noos.TxFIRConfig
}

// DefaultTxFIR returns the reference 64 tap TX filter with
// interpolation 1 and -6 dB gain, applied to both channels.
func DefaultTxFIR() TxFIR {
	f := TxFIR{cfg: noos.TxFIRConfig{Tx: bothChannels, TxGain: -6, TxInt: 1}}
	return f.WithCoefficients(defaultFIRCoefficients[:])
}

func (f TxFIR) WithGain(db int32) TxFIR {
	f.cfg.TxGain = db
	return f
}

func (f TxFIR) WithInterpolation(n uint32) TxFIR {
	f.cfg.TxInt = n
	return f
}

// WithCoefficients returns f with the given taps. More than 128 taps
// panics.
func (f TxFIR) WithCoefficients(c []int16) TxFIR {
	checkCoefficients("tx_fir_coefficients", c)
	f.cfg.TxCoef = [noos.MaxFIRCoefficients]int16{}
	copy(f.cfg.TxCoef[:], c)
	f.cfg.TxCoefSize = uint8(len(c))
	return f
}

func (f TxFIR) Gain() int32           { return f.cfg.TxGain }
func (f TxFIR) Interpolation() uint32 { return f.cfg.TxInt }

func (f TxFIR) Coefficients() []int16 {
	return f.cfg.TxCoef[:f.cfg.TxCoefSize]
}

func (f TxFIR) Config() noos.TxFIRConfig { return f.cfg }
