package interop

//go:generate mockgen -destination mock_hal_test.go -package $GOPACKAGE -write_package_comment=false github.com/wippyai/ad936x/hal Bus,OutputPin,Delay

import (
	stderrors "errors"
	"testing"
	"unsafe"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/hal"
	"github.com/wippyai/ad936x/noos"
)

func mustViolate(t *testing.T, kind errors.Kind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		v, ok := errors.AsViolation(r)
		if !ok {
			t.Fatalf("recovered %v, want violation", r)
		}
		if v.Err.Kind != kind {
			t.Fatalf("violation kind = %s, want %s", v.Err.Kind, kind)
		}
	}()
	fn()
}

// installMocks binds a mock bus, delay and reset pin and arranges for
// Teardown at the end of the test.
func installMocks(t *testing.T, words int) (*noos.InitParam, *MockBus, *MockDelay, *MockOutputPin) {
	t.Helper()
	ctrl := gomock.NewController(t)
	bus := NewMockBus(ctrl)
	d := NewMockDelay(ctrl)
	pin := NewMockOutputPin(ctrl)

	params := noos.DefaultInitParam()
	Install(&params, &bus, &d, &pin, make([]uint32, words))
	t.Cleanup(Teardown)
	return &params, bus, d, pin
}

func TestInstallPointsDescriptorsAtSlots(t *testing.T) {
	params, _, _, _ := installMocks(t, 16)

	if params.SPIParam.PlatformOps != SlotBus || params.SPIParam.Extra != SlotBus {
		t.Fatalf("spi handles = %d/%d, want %d", params.SPIParam.PlatformOps, params.SPIParam.Extra, SlotBus)
	}
	if params.GPIOResetb.PlatformOps != SlotResetB || params.GPIOResetb.Extra != SlotResetB {
		t.Fatalf("resetb handles = %d/%d, want %d", params.GPIOResetb.PlatformOps, params.GPIOResetb.Extra, SlotResetB)
	}
	if params.GPIOResetb.Unused() {
		t.Fatal("resetb still marked unused")
	}
	if !params.GPIOSync.Unused() {
		t.Fatal("sync descriptor was touched")
	}
}

func TestInstallWithoutReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := NewMockBus(ctrl)
	d := &hal.CountingDelay{}
	params := noos.DefaultInitParam()

	Install[*MockBus, *hal.CountingDelay, hal.NoPin](&params, &bus, &d, nil, make([]uint32, 4))
	t.Cleanup(Teardown)

	if !params.GPIOResetb.Unused() {
		t.Fatalf("resetb number = %d, want unused", params.GPIOResetb.Number)
	}

	var desc *noos.GPIODesc
	if rc := Env().GPIOGetOptional(&desc, &params.GPIOResetb); rc != noos.OK || desc != nil {
		t.Fatalf("gpio_get_optional = %d, %p; want OK, nil", rc, desc)
	}
	if rc := Env().GPIOSetValue(desc, 1); rc != noos.OK {
		t.Fatalf("gpio_set_value(nil) = %d", rc)
	}
}

func TestSPIDispatchesToBus(t *testing.T) {
	params, bus, _, _ := installMocks(t, 16)

	bus.EXPECT().Transfer(gomock.Len(3)).DoAndReturn(func(buf []byte) error {
		buf[2] = 0x0A
		return nil
	})

	var desc *noos.SPIDesc
	if rc := Env().SPIInit(&desc, &params.SPIParam); rc != noos.OK {
		t.Fatalf("spi_init = %d", rc)
	}
	if unsafe.Pointer(desc) != unsafe.Pointer(&params.SPIParam) {
		t.Fatal("spi descriptor is not the parameter block")
	}

	frame := [3]byte{0x00, 0x37, 0x00}
	if rc := Env().SPIWriteAndRead(desc, &frame[0], 3); rc != noos.OK {
		t.Fatalf("spi_write_and_read = %d", rc)
	}
	if frame[2] != 0x0A {
		t.Fatalf("frame[2] = %#x, want 0x0A", frame[2])
	}
}

func TestSPIBusErrorIsFailure(t *testing.T) {
	params, bus, _, _ := installMocks(t, 16)
	bus.EXPECT().Transfer(gomock.Any()).Return(stderrors.New("nack"))

	var desc *noos.SPIDesc
	Env().SPIInit(&desc, &params.SPIParam)
	buf := []byte{0x80, 0x00, 0x81}
	if rc := Env().SPIWriteAndRead(desc, &buf[0], uint16(len(buf))); rc != noos.Failure {
		t.Fatalf("spi_write_and_read = %d, want %d", rc, noos.Failure)
	}
}

func TestSPIWithoutDescriptorViolates(t *testing.T) {
	installMocks(t, 16)
	var b byte
	mustViolate(t, errors.KindUnbound, func() { Env().SPIWriteAndRead(nil, &b, 1) })
}

func TestResetPinLevels(t *testing.T) {
	params, _, _, pin := installMocks(t, 16)

	gomock.InOrder(
		pin.EXPECT().SetLow().Return(nil),
		pin.EXPECT().SetHigh().Return(nil),
		pin.EXPECT().SetHigh().Return(stderrors.New("stuck")),
	)

	var desc *noos.GPIODesc
	if rc := Env().GPIOGetOptional(&desc, &params.GPIOResetb); rc != noos.OK || desc == nil {
		t.Fatalf("gpio_get_optional = %d, %p", rc, desc)
	}
	if rc := Env().GPIODirectionOutput(desc, 1); rc != noos.OK {
		t.Fatalf("gpio_direction_output = %d", rc)
	}
	for _, tc := range []struct {
		level uint8
		want  int32
	}{
		{0, noos.OK},
		{1, noos.OK},
		{7, noos.Failure},
	} {
		if rc := Env().GPIOSetValue(desc, tc.level); rc != tc.want {
			t.Fatalf("gpio_set_value(%d) = %d, want %d", tc.level, rc, tc.want)
		}
	}

	var v uint8 = 9
	Env().GPIOGetValue(desc, &v)
	if v != 0 {
		t.Fatalf("gpio_get_value = %d, want 0", v)
	}
}

func TestUnconnectedLineSucceeds(t *testing.T) {
	installMocks(t, 16)
	line := noos.GPIOInitParam{Number: 12}
	var desc *noos.GPIODesc
	Env().GPIOGet(&desc, &line)
	if rc := Env().GPIOSetValue(desc, 1); rc != noos.OK {
		t.Fatalf("gpio_set_value on unconnected line = %d", rc)
	}
}

func TestDelaysForwardToBoundSource(t *testing.T) {
	_, _, d, _ := installMocks(t, 16)
	d.EXPECT().DelayMs(uint32(1000))
	d.EXPECT().DelayUs(uint32(50))

	Env().Mdelay(1000)
	Env().Udelay(50)
}

func TestReinstallReplacesBindings(t *testing.T) {
	installMocks(t, 16)

	ctrl := gomock.NewController(t)
	bus := NewMockBus(ctrl)
	d := NewMockDelay(ctrl)
	params := noos.DefaultInitParam()
	Install[*MockBus, *MockDelay, hal.NoPin](&params, &bus, &d, nil, make([]uint32, 16))

	d.EXPECT().DelayUs(uint32(3))
	Env().Udelay(3)

	if slots[SlotResetB].obj != nil {
		t.Fatal("reset slot survived reinstall")
	}
}

func TestHooksAfterTeardownViolate(t *testing.T) {
	params, _, _, _ := installMocks(t, 16)
	Teardown()

	mustViolate(t, errors.KindUnbound, func() { DelayMs(1) })
	mustViolate(t, errors.KindUnbound, func() { DelayUs(1) })
	mustViolate(t, errors.KindUnbound, func() {
		Transfer(params.SPIParam.PlatformOps, params.SPIParam.Extra, nil)
	})
	mustViolate(t, errors.KindNotInitialized, func() { Malloc(64) })
}

func TestHeapHooks(t *testing.T) {
	installMocks(t, 8)

	p := Malloc(16)
	if p != unsafe.Pointer(&heap.words[0]) {
		t.Fatal("first block is not the heap start")
	}
	*(*uint32)(p) = 0xDEADBEEF

	q := Calloc(2, 8)
	if q != unsafe.Pointer(&heap.words[4]) {
		t.Fatal("second block does not follow the first")
	}
	if used, capacity := HeapUsed(); used != 8 || capacity != 8 {
		t.Fatalf("HeapUsed = %d/%d, want 8/8", used, capacity)
	}

	Free(q)
	if used, _ := HeapUsed(); used != 4 {
		t.Fatalf("used after rewind = %d, want 4", used)
	}

	// Calloc zeroes what was written before.
	heap.words[5] = 0xFFFFFFFF
	_ = Calloc(1, 16)
	if heap.words[5] != 0 {
		t.Fatalf("calloc left %#x", heap.words[5])
	}

	Free(p)
	if st := HeapState(); st.Top != baseAddr() {
		t.Fatalf("top after reset = %#x, want heap start", st.Top)
	}
}

func TestScratchpadHook(t *testing.T) {
	installMocks(t, 4)

	s := Malloc(4)
	if s != unsafe.Pointer(&heap.scratch) {
		t.Fatal("small allocation did not use the scratchpad")
	}
	if !HeapState().ScratchTaken {
		t.Fatal("scratchpad not marked taken")
	}
	mustViolate(t, errors.KindReentrant, func() { Malloc(1) })
	Free(s)
	if HeapState().ScratchTaken {
		t.Fatal("scratchpad still taken after free")
	}
}

func TestHeapExhaustion(t *testing.T) {
	installMocks(t, 4)
	Malloc(12)
	mustViolate(t, errors.KindHeapExhausted, func() { Malloc(8) })
}

func TestHeapUsesSliceCapacity(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := NewMockBus(ctrl)
	d := &hal.CountingDelay{}
	params := noos.DefaultInitParam()
	Install[*MockBus, *hal.CountingDelay, hal.NoPin](&params, &bus, &d, nil, make([]uint32, 0, 32))
	t.Cleanup(Teardown)

	if _, capacity := HeapUsed(); capacity != 32 {
		t.Fatalf("capacity = %d, want 32", capacity)
	}
}

func TestDoDiv(t *testing.T) {
	n := uint64(3*1000000 + 570)
	rem := Env().DoDiv(&n, 1140)
	if n != 2632 || rem != 90 {
		t.Fatalf("DoDiv = %d rem %d", n, rem)
	}
}

func TestErrnoCell(t *testing.T) {
	installMocks(t, 4)
	*Env().Errno() = -22
	if errno != -22 {
		t.Fatal("errno cell not shared")
	}
	Teardown()
	if *Env().Errno() != 0 {
		t.Fatal("teardown did not clear errno")
	}
}

func TestStrlen(t *testing.T) {
	s := []byte("ad9361\x00junk")
	if n := Env().Strlen(&s[0]); n != 6 {
		t.Fatalf("Strlen = %d, want 6", n)
	}
}

func TestConsoleOutputIsLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	for _, c := range "ad9361_init : AD936x Rev 2 successfully initialized\n" {
		Env().Putchar(c)
	}
	banner := []byte("second line\x00")
	Env().Puts(&banner[0])
	Env().Putchar('x')
	Teardown()

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("logged %d lines, want 3", len(entries))
	}
	if entries[0].Message != "ad9361_init : AD936x Rev 2 successfully initialized" {
		t.Fatalf("first line = %q", entries[0].Message)
	}
	if entries[1].Message != "second line" || entries[2].Message != "x" {
		t.Fatalf("lines = %q, %q", entries[1].Message, entries[2].Message)
	}
	if entries[0].ContextMap()["source"] != "driver" {
		t.Fatalf("source field = %v", entries[0].ContextMap()["source"])
	}
}

func TestSingleton(t *testing.T) {
	Acquire()
	if !Taken() {
		t.Fatal("slot not taken")
	}
	mustViolate(t, errors.KindSingleton, Acquire)
	Release()
	if Taken() {
		t.Fatal("slot still taken")
	}
	mustViolate(t, errors.KindSingleton, Release)
}
