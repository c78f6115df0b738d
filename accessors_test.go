package ad936x

import (
	"math"
	"testing"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/noos"
)

func TestTxAttenuationRoundTrip(t *testing.T) {
	dev, _ := initSimDevice(t)

	for _, ch := range []uint8{0, 1} {
		for _, mdB := range []uint32{0, 250, 10000, 89750} {
			if err := dev.SetTxAttenuation(ch, mdB); err != nil {
				t.Fatalf("SetTxAttenuation(%d, %d) failed: %v", ch, mdB, err)
			}
			got, err := dev.GetTxAttenuation(ch)
			if err != nil {
				t.Fatalf("GetTxAttenuation(%d) failed: %v", ch, err)
			}
			if got != mdB {
				t.Fatalf("channel %d attenuation = %d, want %d", ch, got, mdB)
			}
		}
	}
}

func TestStatusErrors(t *testing.T) {
	dev, _ := initSimDevice(t)

	err := dev.SetTxAttenuation(0, 90000)
	if code, ok := errors.StatusCode(err); !ok || code != noos.EINVAL {
		t.Fatalf("SetTxAttenuation(90000) error = %v, want EINVAL", err)
	}
	if e, ok := err.(*errors.Error); !ok || e.Phase != errors.PhaseAccess || e.Op != "set_tx_attenuation" {
		t.Fatalf("error %v is not an access status error", err)
	}

	if _, err := dev.GetTxAttenuation(2); err == nil {
		t.Fatal("GetTxAttenuation on channel 2 succeeded")
	}
}

func TestLoFreqRoundTrip(t *testing.T) {
	dev, _ := initSimDevice(t)

	if err := dev.SetRxLoFreq(915_000_000); err != nil {
		t.Fatalf("SetRxLoFreq failed: %v", err)
	}
	if err := dev.SetTxLoFreq(2_450_000_000); err != nil {
		t.Fatalf("SetTxLoFreq failed: %v", err)
	}

	rx, err := dev.GetRxLoFreq()
	if err != nil || rx != 915_000_000 {
		t.Fatalf("GetRxLoFreq = %d, %v", rx, err)
	}
	tx, err := dev.GetTxLoFreq()
	if err != nil || tx != 2_450_000_000 {
		t.Fatalf("GetTxLoFreq = %d, %v", tx, err)
	}

	if err := dev.SetRxLoFreq(10_000_000); err == nil {
		t.Fatal("SetRxLoFreq below range succeeded")
	}
}

func TestBandwidthAndSampleRate(t *testing.T) {
	dev, _ := initSimDevice(t)

	if err := dev.SetRxRfBandwidth(5_000_000); err != nil {
		t.Fatalf("SetRxRfBandwidth failed: %v", err)
	}
	if err := dev.SetTxRfBandwidth(7_000_000); err != nil {
		t.Fatalf("SetTxRfBandwidth failed: %v", err)
	}
	if bw, _ := dev.GetRxRfBandwidth(); bw != 5_000_000 {
		t.Fatalf("rx bandwidth = %d", bw)
	}
	if bw, _ := dev.GetTxRfBandwidth(); bw != 7_000_000 {
		t.Fatalf("tx bandwidth = %d", bw)
	}

	if err := dev.SetTxSamplingFreq(15_360_000); err != nil {
		t.Fatalf("SetTxSamplingFreq failed: %v", err)
	}
	if rate, _ := dev.GetRxSamplingFreq(); rate != 15_360_000 {
		t.Fatalf("rx rate = %d, want the tx rate", rate)
	}
}

func TestFirEnableRoundTrip(t *testing.T) {
	dev, _ := initSimDevice(t)

	if err := dev.SetRxFirConfig(DefaultRxFIR()); err != nil {
		t.Fatalf("SetRxFirConfig failed: %v", err)
	}
	if err := dev.SetTxFirConfig(DefaultTxFIR()); err != nil {
		t.Fatalf("SetTxFirConfig failed: %v", err)
	}

	for _, en := range []bool{true, false, true} {
		if err := dev.SetRxFirEnDis(en); err != nil {
			t.Fatalf("SetRxFirEnDis(%v) failed: %v", en, err)
		}
		if err := dev.SetTxFirEnDis(en); err != nil {
			t.Fatalf("SetTxFirEnDis(%v) failed: %v", en, err)
		}
		if got, _ := dev.GetRxFirEnDis(); got != en {
			t.Fatalf("rx fir enabled = %v, want %v", got, en)
		}
		if got, _ := dev.GetTxFirEnDis(); got != en {
			t.Fatalf("tx fir enabled = %v, want %v", got, en)
		}
	}
}

func TestFirConfigRejected(t *testing.T) {
	dev, _ := initSimDevice(t)

	err := dev.SetRxFirConfig(DefaultRxFIR().WithCoefficients(make([]int16, 20)))
	if code, ok := errors.StatusCode(err); !ok || code != noos.EINVAL {
		t.Fatalf("20 tap config error = %v, want EINVAL", err)
	}
}

func TestTxLoPower(t *testing.T) {
	dev, _ := initSimDevice(t)

	if got, _ := dev.GetTxLoPower(); got != LOOn {
		t.Fatalf("initial LO power = %s, want On", got)
	}
	if err := dev.TxLoPowerdown(LOOff); err != nil {
		t.Fatalf("TxLoPowerdown(Off) failed: %v", err)
	}
	if got, _ := dev.GetTxLoPower(); got != LOOff {
		t.Fatalf("LO power = %s, want Off", got)
	}
	if err := dev.TxLoPowerdown(LOOn); err != nil {
		t.Fatalf("TxLoPowerdown(On) failed: %v", err)
	}
	if got, _ := dev.GetTxLoPower(); got != LOOn {
		t.Fatalf("LO power = %s, want On", got)
	}
}

func TestGainControl(t *testing.T) {
	dev, _ := initSimDevice(t)

	if mode, _ := dev.GetRxGainControlMode(0); mode != SlowAttackAgc {
		t.Fatalf("default gain mode = %s, want SlowAttackAgc", mode)
	}

	err := dev.SetRxRfGain(0, 20)
	if code, _ := errors.StatusCode(err); code != noos.EOPNOTSUPP {
		t.Fatalf("SetRxRfGain under AGC error = %v, want EOPNOTSUPP", err)
	}

	if err := dev.SetRxGainControlMode(0, Manual); err != nil {
		t.Fatalf("SetRxGainControlMode failed: %v", err)
	}
	if err := dev.SetRxRfGain(0, 20); err != nil {
		t.Fatalf("SetRxRfGain failed: %v", err)
	}
	if gain, _ := dev.GetRxRfGain(0); gain != 20 {
		t.Fatalf("rx gain = %d, want 20", gain)
	}
}

func TestPortSelection(t *testing.T) {
	dev, _ := initSimDevice(t)

	if err := dev.SetRxRfPortInput(CBalanced); err != nil {
		t.Fatalf("SetRxRfPortInput failed: %v", err)
	}
	if err := dev.SetTxRfPortOutput(TXB); err != nil {
		t.Fatalf("SetTxRfPortOutput failed: %v", err)
	}
	if got, _ := dev.GetRxRfPortInput(); got != CBalanced {
		t.Fatalf("rx port = %s", got)
	}
	if got, _ := dev.GetTxRfPortOutput(); got != TXB {
		t.Fatalf("tx port = %s", got)
	}
	if err := dev.SetRxRfPortInput(RxRfPortSelection(12)); err == nil {
		t.Fatal("out of range rx port accepted")
	}
}

func TestLoIntExt(t *testing.T) {
	dev, _ := initSimDevice(t)

	if err := dev.SetRxLoIntExt(ExternalLO); err != nil {
		t.Fatalf("SetRxLoIntExt failed: %v", err)
	}
	if err := dev.SetTxLoIntExt(InternalLO); err != nil {
		t.Fatalf("SetTxLoIntExt failed: %v", err)
	}
	if err := dev.SetTxLoIntExt(InternalExternalLO(2)); err == nil {
		t.Fatal("invalid LO source accepted")
	}
}

func TestRssi(t *testing.T) {
	dev, bus := initSimDevice(t)
	bus.Force(0x1A7, 40)

	got, err := dev.GetRxRssi(0)
	if err != nil {
		t.Fatalf("GetRxRssi failed: %v", err)
	}
	if got != -10 {
		t.Fatalf("rssi = %v, want -10", got)
	}
}

func TestMute(t *testing.T) {
	dev, _ := initSimDevice(t)

	if err := dev.SetTxAttenuation(0, 12000); err != nil {
		t.Fatalf("SetTxAttenuation failed: %v", err)
	}
	if err := dev.TxMute(Mute); err != nil {
		t.Fatalf("TxMute(Mute) failed: %v", err)
	}
	if got, _ := dev.GetTxAttenuation(0); got != 89750 {
		t.Fatalf("muted attenuation = %d, want 89750", got)
	}
	if err := dev.TxMute(Unmute); err != nil {
		t.Fatalf("TxMute(Unmute) failed: %v", err)
	}
	if got, _ := dev.GetTxAttenuation(0); got != 12000 {
		t.Fatalf("unmuted attenuation = %d, want 12000", got)
	}
}

func TestBist(t *testing.T) {
	dev, _ := initSimDevice(t)

	if got := dev.GetBistPrbs(); got != BistDisable {
		t.Fatalf("initial prbs = %s", got)
	}
	if err := dev.BistPrbs(BistInjectRx); err != nil {
		t.Fatalf("BistPrbs failed: %v", err)
	}
	if got := dev.GetBistPrbs(); got != BistInjectRx {
		t.Fatalf("prbs = %s, want InjectRx", got)
	}

	if err := dev.BistLoopback(LoopbackEnabled); err != nil {
		t.Fatalf("BistLoopback failed: %v", err)
	}
	if got := dev.GetBistLoopback(); got != LoopbackEnabled {
		t.Fatalf("loopback = %s", got)
	}

	if err := dev.BistTone(BistInjectTx, 1_000_000, 6, 0); err != nil {
		t.Fatalf("BistTone failed: %v", err)
	}
	if err := dev.BistTone(BistInjectTx, 1_000_000, 24, 0); err == nil {
		t.Fatal("BistTone accepted a 24 dB level")
	}
}

func TestTemperatureConversion(t *testing.T) {
	if got := temperatureFromRaw(2600); math.Abs(float64(got)-2.6) > 1e-6 {
		t.Fatalf("temperatureFromRaw(2600) = %v, want 2.6", got)
	}
	if got := temperatureFromRaw(-12500); got != -12.5 {
		t.Fatalf("temperatureFromRaw(-12500) = %v", got)
	}
}

func TestLoPowerEncoding(t *testing.T) {
	tests := []struct {
		raw  uint8
		want LOPowerStatus
	}{
		{0, LOOff},
		{1, LOOn},
		{7, LOOn},
	}
	for _, tt := range tests {
		if got := txLoPower.codec.fromRaw(tt.raw); got != tt.want {
			t.Fatalf("fromRaw(%d) = %s, want %s", tt.raw, got, tt.want)
		}
	}
	if got := txLoPower.codec.toRaw(LOOn); got != 0 {
		t.Fatalf("toRaw(On) = %d, want 0", got)
	}
	if got := txLoPower.codec.toRaw(LOOff); got != 1 {
		t.Fatalf("toRaw(Off) = %d, want 1", got)
	}
}

func TestEnumDecoding(t *testing.T) {
	if got := gainModeFromRaw(9); got != Manual {
		t.Fatalf("gain mode 9 = %s, want Manual", got)
	}
	if got := rxPortFromRaw(40); got != ABalanced {
		t.Fatalf("rx port 40 = %s, want A_BALANCED", got)
	}
	if got := txPortFromRaw(3); got != TXB {
		t.Fatalf("tx port 3 = %s, want TXB", got)
	}
	if got := ensmFromRaw(3); got != EnsmUnknown {
		t.Fatalf("ensm 3 = %s, want Unknown", got)
	}
	if got := ensmFromRaw(10); got != Fdd {
		t.Fatalf("ensm 10 = %s, want Fdd", got)
	}
	if got := loopbackFromRaw(2); got != LoopbackDisabled {
		t.Fatalf("loopback 2 = %s, want Disabled", got)
	}
	if !boolFromRaw(2) || boolFromRaw(0) {
		t.Fatal("bool decoding")
	}
	if got := rssiFromRaw(noos.RFRSSI{Symbol: 250}); got != -2.5 {
		t.Fatalf("rssi = %v, want -2.5", got)
	}
}
