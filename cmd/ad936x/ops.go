package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/ad936x"
	"github.com/wippyai/ad936x/errors"
)

// param is one argument of a console operation.
type param struct {
	name string
	hint string
}

// operation is one console entry: a device call with parsed arguments.
type operation struct {
	name   string
	params []param
	run    func(dev *radio, args argList) (string, error)
}

var (
	chParam   = param{"ch", "0|1"}
	hzParam   = param{"hz", "u32"}
	loParam   = param{"hz", "u64"}
	boolParam = param{"enable", "true|false"}
)

// operations is the console menu, sorted by name.
var operations = []operation{
	{"bist_loopback", []param{{"mode", "0|1"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.BistLoopback(ad936x.LoopbackMode(a.int32(0))))
	}},
	{"bist_prbs", []param{{"mode", "0=off 1=tx 2=rx"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.BistPrbs(ad936x.BistMode(a.uint32(0))))
	}},
	{"bist_tone", []param{{"mode", "0=off 1=tx 2=rx"}, {"freq_hz", "u32"}, {"level_db", "u32"}, {"mask", "u32"}},
		func(dev *radio, a argList) (string, error) {
			return done(dev.BistTone(ad936x.BistMode(a.uint32(0)), a.uint32(1), a.uint32(2), a.uint32(3)))
		}},
	{"ensm_get_state", nil, func(dev *radio, _ argList) (string, error) {
		return dev.EnsmGetState().String(), nil
	}},
	{"gain_table", []param{{"lo_hz", "u64"}, {"kind", "full|split"}}, func(_ *radio, a argList) (string, error) {
		kind := ad936x.FullGainTable
		if a.str(1) == "split" {
			kind = ad936x.SplitGainTable
		}
		return describeGainTable(ad936x.NewGainTable(kind, a.uint64(0))), nil
	}},
	{"get_bist_loopback", nil, func(dev *radio, _ argList) (string, error) {
		return dev.GetBistLoopback().String(), nil
	}},
	{"get_bist_prbs", nil, func(dev *radio, _ argList) (string, error) {
		return dev.GetBistPrbs().String(), nil
	}},
	{"get_rx_fir_en_dis", nil, func(dev *radio, _ argList) (string, error) {
		return boolean(dev.GetRxFirEnDis())
	}},
	{"get_rx_gain_control_mode", []param{chParam}, func(dev *radio, a argList) (string, error) {
		return show(dev.GetRxGainControlMode(a.uint8(0)))
	}},
	{"get_rx_lo_freq", nil, func(dev *radio, _ argList) (string, error) {
		return hz(dev.GetRxLoFreq())
	}},
	{"get_rx_rf_bandwidth", nil, func(dev *radio, _ argList) (string, error) {
		return hz(dev.GetRxRfBandwidth())
	}},
	{"get_rx_rf_gain", []param{chParam}, func(dev *radio, a argList) (string, error) {
		return dB(dev.GetRxRfGain(a.uint8(0)))
	}},
	{"get_rx_rf_port_input", nil, func(dev *radio, _ argList) (string, error) {
		return show(dev.GetRxRfPortInput())
	}},
	{"get_rx_rssi", []param{chParam}, func(dev *radio, a argList) (string, error) {
		return dB(dev.GetRxRssi(a.uint8(0)))
	}},
	{"get_rx_sampling_freq", nil, func(dev *radio, _ argList) (string, error) {
		return hz(dev.GetRxSamplingFreq())
	}},
	{"get_temperature", nil, func(dev *radio, _ argList) (string, error) {
		return celsius(dev.GetTemperature())
	}},
	{"get_tx_attenuation", []param{chParam}, func(dev *radio, a argList) (string, error) {
		return mdB(dev.GetTxAttenuation(a.uint8(0)))
	}},
	{"get_tx_fir_en_dis", nil, func(dev *radio, _ argList) (string, error) {
		return boolean(dev.GetTxFirEnDis())
	}},
	{"get_tx_lo_freq", nil, func(dev *radio, _ argList) (string, error) {
		return hz(dev.GetTxLoFreq())
	}},
	{"get_tx_lo_power", nil, func(dev *radio, _ argList) (string, error) {
		return show(dev.GetTxLoPower())
	}},
	{"get_tx_rf_bandwidth", nil, func(dev *radio, _ argList) (string, error) {
		return hz(dev.GetTxRfBandwidth())
	}},
	{"get_tx_rf_port_output", nil, func(dev *radio, _ argList) (string, error) {
		return show(dev.GetTxRfPortOutput())
	}},
	{"get_tx_sampling_freq", nil, func(dev *radio, _ argList) (string, error) {
		return hz(dev.GetTxSamplingFreq())
	}},
	{"set_intf_delay", []param{{"tx", "true|false"}, {"clock", "0-15"}, {"data", "0-15"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetIntfDelay(a.bool(0), a.uint32(1), a.uint32(2), true))
	}},
	{"set_lvds_bias_control", []param{{"rx_term", "true|false"}, {"tx_lo_vcm", "true|false"}, {"bias_mv", "75-450"}},
		func(dev *radio, a argList) (string, error) {
			return done(dev.SetLvdsBiasControl(a.bool(0), a.bool(1), a.uint32(2)))
		}},
	{"set_rx_fir_config", []param{{"gain_db", "-12|-6|0|6"}, {"decimation", "1|2|4"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetRxFirConfig(ad936x.DefaultRxFIR().WithGain(a.int32(0)).WithDecimation(a.uint32(1))))
	}},
	{"set_rx_fir_en_dis", []param{boolParam}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetRxFirEnDis(a.bool(0)))
	}},
	{"set_rx_gain_control_mode", []param{chParam, {"mode", "0=manual 1=fast 2=slow 3=hybrid"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetRxGainControlMode(a.uint8(0), ad936x.RfGainControlMode(a.uint8(1))))
	}},
	{"set_rx_lo_freq", []param{loParam}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetRxLoFreq(a.uint64(0)))
	}},
	{"set_rx_rf_bandwidth", []param{hzParam}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetRxRfBandwidth(a.uint32(0)))
	}},
	{"set_rx_rf_gain", []param{chParam, {"gain_db", "s32"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetRxRfGain(a.uint8(0), a.int32(1)))
	}},
	{"set_rx_rf_port_input", []param{{"port", "0-11"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetRxRfPortInput(ad936x.RxRfPortSelection(a.uint32(0))))
	}},
	{"set_rx_sampling_freq", []param{hzParam}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetRxSamplingFreq(a.uint32(0)))
	}},
	{"set_tx_attenuation", []param{chParam, {"mdb", "0-89750"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetTxAttenuation(a.uint8(0), a.uint32(1)))
	}},
	{"set_tx_fir_config", []param{{"gain_db", "-6|0"}, {"interpolation", "1|2|4"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetTxFirConfig(ad936x.DefaultTxFIR().WithGain(a.int32(0)).WithInterpolation(a.uint32(1))))
	}},
	{"set_tx_fir_en_dis", []param{boolParam}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetTxFirEnDis(a.bool(0)))
	}},
	{"set_tx_lo_freq", []param{loParam}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetTxLoFreq(a.uint64(0)))
	}},
	{"set_tx_rf_bandwidth", []param{hzParam}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetTxRfBandwidth(a.uint32(0)))
	}},
	{"set_tx_rf_port_output", []param{{"port", "0=A 1=B"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetTxRfPortOutput(ad936x.TxRfPortSelection(a.uint32(0))))
	}},
	{"set_tx_sampling_freq", []param{hzParam}, func(dev *radio, a argList) (string, error) {
		return done(dev.SetTxSamplingFreq(a.uint32(0)))
	}},
	{"tx_lo_powerdown", []param{{"off", "true|false"}}, func(dev *radio, a argList) (string, error) {
		status := ad936x.LOOn
		if a.bool(0) {
			status = ad936x.LOOff
		}
		return done(dev.TxLoPowerdown(status))
	}},
	{"tx_mute", []param{{"mute", "true|false"}}, func(dev *radio, a argList) (string, error) {
		return done(dev.TxMute(ad936x.TxState(a.bool(0))))
	}},
}

// argList parses console input. A parse failure panics with an
// invalid-input violation that call turns into an error.
type argList []string

func (a argList) str(i int) string {
	if i >= len(a) {
		return ""
	}
	return strings.TrimSpace(a[i])
}

func (a argList) fail(i int, err error) {
	errors.Violate(errors.InvalidInput(errors.PhaseAccess, fmt.Sprintf("argument %d %q: %v", i+1, a.str(i), err)))
}

func (a argList) uint64(i int) uint64 {
	v, err := strconv.ParseUint(strings.ReplaceAll(a.str(i), "_", ""), 0, 64)
	if err != nil {
		a.fail(i, err)
	}
	return v
}

func (a argList) int64(i int, bits int) int64 {
	v, err := strconv.ParseInt(strings.ReplaceAll(a.str(i), "_", ""), 0, bits)
	if err != nil {
		a.fail(i, err)
	}
	return v
}

func (a argList) uint32(i int) uint32 {
	v, err := strconv.ParseUint(strings.ReplaceAll(a.str(i), "_", ""), 0, 32)
	if err != nil {
		a.fail(i, err)
	}
	return uint32(v)
}

func (a argList) uint8(i int) uint8 {
	v, err := strconv.ParseUint(a.str(i), 0, 8)
	if err != nil {
		a.fail(i, err)
	}
	return uint8(v)
}

func (a argList) int32(i int) int32 { return int32(a.int64(i, 32)) }

func (a argList) bool(i int) bool {
	v, err := strconv.ParseBool(a.str(i))
	if err != nil {
		a.fail(i, err)
	}
	return v
}

// call runs op, turning violations into errors so a bad argument does
// not end the session.
func call(op operation, dev *radio, args []string) (out string, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		v, ok := errors.AsViolation(r)
		if !ok {
			panic(r)
		}
		err = v
	}()
	return op.run(dev, argList(args))
}

func lookupOperation(name string) (operation, bool) {
	for _, op := range operations {
		if op.name == name {
			return op, true
		}
	}
	return operation{}, false
}

func done(err error) (string, error) {
	if err != nil {
		return "", err
	}
	return "ok", nil
}

func show(v fmt.Stringer, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func boolean(v bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return strconv.FormatBool(v), nil
}

func hz(v any, err error) (string, error) {
	if err != nil {
		return "", err
	}
	switch n := v.(type) {
	case uint32:
		return formatHz(uint64(n)), nil
	case uint64:
		return formatHz(n), nil
	}
	return fmt.Sprint(v), nil
}

// suffix returns a formatter appending unit to a value.
func suffix(unit string) func(any, error) (string, error) {
	return func(v any, err error) (string, error) {
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v %s", v, unit), nil
	}
}

var (
	dB      = suffix("dB")
	mdB     = suffix("mdB")
	celsius = suffix("°C")
)

func formatHz(v uint64) string {
	switch {
	case v >= 1_000_000_000:
		return strconv.FormatFloat(float64(v)/1e9, 'f', -1, 64) + " GHz"
	case v >= 1_000_000:
		return strconv.FormatFloat(float64(v)/1e6, 'f', -1, 64) + " MHz"
	case v >= 1_000:
		return strconv.FormatFloat(float64(v)/1e3, 'f', -1, 64) + " kHz"
	default:
		return strconv.FormatUint(v, 10) + " Hz"
	}
}

func describeGainTable(t ad936x.GainTable) string {
	start, end := t.FrequencyRange()
	var b strings.Builder
	fmt.Fprintf(&b, "%s table for %s..%s, %d entries\n", t.Kind(), formatHz(start), formatHz(end), t.MaxIndex())
	entries := t.Entries()
	for i, e := range entries {
		if i > 2 && i < len(entries)-3 {
			if i == 3 {
				b.WriteString("  ...\n")
			}
			continue
		}
		fmt.Fprintf(&b, "  %2d: %02x %02x %02x %+d dB\n", i+1, e.Reg131, e.Reg132, e.Reg133, e.AbsGain)
	}
	return strings.TrimRight(b.String(), "\n")
}
