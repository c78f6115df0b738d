package ad936x

import (
	"math"
	"testing"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/hal"
	"github.com/wippyai/ad936x/internal/interop"
	"github.com/wippyai/ad936x/noos"
	"github.com/wippyai/ad936x/noos/sim"
	"github.com/wippyai/ad936x/transaction"
)

type simDevice = Device[*transaction.Simulator, *hal.CountingDelay, hal.NoPin]

type levelPin struct {
	levels []uint8
}

func (p *levelPin) SetLow() error  { p.levels = append(p.levels, 0); return nil }
func (p *levelPin) SetHigh() error { p.levels = append(p.levels, 1); return nil }

func newSimDevice(t *testing.T, words int) (*simDevice, *transaction.Simulator) {
	t.Helper()
	bus := transaction.NewSimulator()
	dev := NewWithoutReset(sim.New(), bus, &hal.CountingDelay{}, NewHeap(words))
	t.Cleanup(func() { dev.Close() })
	return dev, bus
}

func initSimDevice(t *testing.T) (*simDevice, *transaction.Simulator) {
	t.Helper()
	dev, bus := newSimDevice(t, 540)
	if err := dev.Init(noos.DefaultInitParam()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return dev, bus
}

func mustViolate(t *testing.T, kind errors.Kind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		v, ok := errors.AsViolation(recover())
		if !ok {
			t.Fatal("expected violation")
		}
		if v.Err.Kind != kind {
			t.Fatalf("violation kind = %s, want %s (%v)", v.Err.Kind, kind, v)
		}
	}()
	fn()
}

func TestSingleDevice(t *testing.T) {
	first, _ := newSimDevice(t, 540)

	mustViolate(t, errors.KindSingleton, func() {
		NewWithoutReset(sim.New(), transaction.NewSimulator(), &hal.CountingDelay{}, NewHeap(540))
	})

	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if interop.Taken() {
		t.Fatal("slot still taken after Close")
	}

	second, _ := newSimDevice(t, 540)
	if err := second.Init(noos.DefaultInitParam()); err != nil {
		t.Fatalf("Init after Close failed: %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	dev, _ := initSimDevice(t)
	if err := dev.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := dev.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if used, _ := interop.HeapUsed(); used != 0 {
		t.Fatalf("heap used after Close = %d", used)
	}
}

func TestAccessBeforeInit(t *testing.T) {
	dev, _ := newSimDevice(t, 540)

	mustViolate(t, errors.KindNotInitialized, func() { dev.GetTemperature() })
	mustViolate(t, errors.KindNotInitialized, func() { dev.EnsmGetState() })
	mustViolate(t, errors.KindNotInitialized, func() { dev.SetIntfDelay(true, 0, 0, false) })
}

func TestAccessAfterClose(t *testing.T) {
	dev, _ := initSimDevice(t)
	dev.Close()

	mustViolate(t, errors.KindNotInitialized, func() { dev.GetTxLoFreq() })
	mustViolate(t, errors.KindNotInitialized, func() { dev.Init(noos.DefaultInitParam()) })
}

func TestRepeatedInit(t *testing.T) {
	dev, _ := initSimDevice(t)
	if err := dev.SetTxAttenuation(0, 20000); err != nil {
		t.Fatalf("SetTxAttenuation failed: %v", err)
	}

	for i := range 3 {
		if err := dev.Init(noos.DefaultInitParam()); err != nil {
			t.Fatalf("Init #%d failed: %v", i+2, err)
		}
		if used, _ := interop.HeapUsed(); used != sim.HeapWords {
			t.Fatalf("heap used after Init #%d = %d, want %d", i+2, used, sim.HeapWords)
		}
	}

	got, err := dev.GetTxAttenuation(0)
	if err != nil {
		t.Fatalf("GetTxAttenuation failed: %v", err)
	}
	if want := uint32(noos.DefaultInitParam().TxAttenuationMdB); got != want {
		t.Fatalf("attenuation after re-init = %d, want %d", got, want)
	}
}

func TestInitFailureLeavesDeviceUninitialized(t *testing.T) {
	dev, bus := newSimDevice(t, 540)
	bus.Force(0x037, 0x00)

	err := dev.Init(noos.DefaultInitParam())
	if code, ok := errors.StatusCode(err); !ok || code != noos.ENODEV {
		t.Fatalf("Init error = %v, want ENODEV", err)
	}
	if dev.Initialized() {
		t.Fatal("device marked initialized after failed Init")
	}
	mustViolate(t, errors.KindNotInitialized, func() { dev.GetTemperature() })
}

func TestHeapSizing(t *testing.T) {
	dev, _ := newSimDevice(t, 400)
	mustViolate(t, errors.KindHeapExhausted, func() { dev.Init(noos.DefaultInitParam()) })
}

func TestHeapLengthOrCapacity(t *testing.T) {
	bus := transaction.NewSimulator()
	dev := NewWithoutReset(sim.New(), bus, &hal.CountingDelay{}, make([]uint32, sim.HeapWords))
	defer dev.Close()

	if err := dev.Init(noos.DefaultInitParam()); err != nil {
		t.Fatalf("Init with exactly %d words failed: %v", sim.HeapWords, err)
	}
}

func TestResetPin(t *testing.T) {
	pin := &levelPin{}
	delay := &hal.CountingDelay{}
	dev := New(sim.New(), transaction.NewSimulator(), delay, &pin, NewHeap(540))
	defer dev.Close()

	if err := dev.Init(noos.DefaultInitParam()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if len(pin.levels) != 2 || pin.levels[0] != 0 || pin.levels[1] != 1 {
		t.Fatalf("reset levels = %v, want [0 1]", pin.levels)
	}
	if got := dev.Params().GPIOResetb.Number; got != 1 {
		t.Fatalf("resetb number = %d, want 1", got)
	}
	if delay.Ms == 0 {
		t.Fatal("reset pulse was not held")
	}
}

func TestMovedDevice(t *testing.T) {
	dev, _ := initSimDevice(t)

	moved := new(simDevice)
	*moved = *dev
	mustViolate(t, errors.KindMoved, func() { moved.GetTemperature() })

	if _, err := dev.GetTemperature(); err != nil {
		t.Fatalf("original device unusable: %v", err)
	}
}

func TestTemperatureEndToEnd(t *testing.T) {
	dev, _ := initSimDevice(t)

	temp, err := dev.GetTemperature()
	if err != nil {
		t.Fatalf("GetTemperature failed: %v", err)
	}
	if math.Abs(float64(temp)-2.6) >= 0.1 {
		t.Fatalf("temperature = %.3f, want 2.6 +/- 0.1", temp)
	}
	if got := dev.EnsmGetState(); got != Fdd {
		t.Fatalf("ENSM = %s, want Fdd", got)
	}
}

func TestSetIntfDelay(t *testing.T) {
	dev, bus := initSimDevice(t)

	tests := []struct {
		name         string
		tx           bool
		clockChanged bool
		want         []transaction.Transaction
	}{
		{
			name: "rx",
			want: []transaction.Transaction{
				{Register: 0x006, Write: true, Length: 1, Value: 0x35},
			},
		},
		{
			name:         "tx clock changed",
			tx:           true,
			clockChanged: true,
			want: []transaction.Transaction{
				{Register: 0x017, Write: true, Length: 1, Value: 5},
				{Register: 0x007, Write: true, Length: 1, Value: 0x35},
				{Register: 0x017, Write: true, Length: 1, Value: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus.ClearHistory()
			if err := dev.SetIntfDelay(tt.tx, 3, 5, tt.clockChanged); err != nil {
				t.Fatalf("SetIntfDelay failed: %v", err)
			}
			got := bus.Writes()
			if len(got) != len(tt.want) {
				t.Fatalf("writes = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("write %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

	mustViolate(t, errors.KindOutOfRange, func() { dev.SetIntfDelay(false, 16, 0, false) })
	mustViolate(t, errors.KindOutOfRange, func() { dev.SetIntfDelay(false, 0, 16, false) })
}

func TestSetLvdsBiasControl(t *testing.T) {
	dev, bus := initSimDevice(t)

	tests := []struct {
		term, vcm bool
		mv        uint32
		want      uint8
	}{
		{false, false, 75, 0x00},
		{true, false, 150, 0x21},
		{false, true, 450, 0x0D},
		{true, true, 300, 0x2B},
	}
	for _, tt := range tests {
		if err := dev.SetLvdsBiasControl(tt.term, tt.vcm, tt.mv); err != nil {
			t.Fatalf("SetLvdsBiasControl(%v, %v, %d) failed: %v", tt.term, tt.vcm, tt.mv, err)
		}
		if got := bus.Register(0x03C); got != tt.want {
			t.Fatalf("reg 0x03C = 0x%02x, want 0x%02x", got, tt.want)
		}
	}

	mustViolate(t, errors.KindOutOfRange, func() { dev.SetLvdsBiasControl(false, false, 74) })
	mustViolate(t, errors.KindOutOfRange, func() { dev.SetLvdsBiasControl(false, false, 451) })
}
