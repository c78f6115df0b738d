package wasmhost

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/internal/admalloc"
	"github.com/wippyai/ad936x/noos"
)

// HostModule is the import module name the guest links its platform
// layer against.
const HostModule = "env"

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

// funcDef is one host function export.
type funcDef struct {
	name    string
	fn      api.GoModuleFunc
	params  []api.ValueType
	results []api.ValueType
}

// host is the state behind the env module: the guest heap and the
// platform hooks of the device currently initializing or running.
type host struct {
	env    *noos.Env
	arena  admalloc.Arena
	layout layout
	log    *zap.Logger
}

func (h *host) funcs() []funcDef {
	return []funcDef{
		{"admalloc", h.admalloc, []api.ValueType{i32}, []api.ValueType{i32}},
		{"adcalloc", h.adcalloc, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{"adfree", h.adfree, []api.ValueType{i32}, nil},

		{"spi_init", h.spiInit, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{"spi_write_and_read", h.spiWriteAndRead, []api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
		{"spi_remove", h.spiRemove, []api.ValueType{i32}, []api.ValueType{i32}},

		{"gpio_get", h.gpioGet, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{"gpio_get_optional", h.gpioGet, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{"gpio_direction_input", h.gpioDirectionInput, []api.ValueType{i32}, []api.ValueType{i32}},
		{"gpio_direction_output", h.gpioDirectionOutput, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{"gpio_set_value", h.gpioSetValue, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{"gpio_get_value", h.gpioGetValue, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{"gpio_remove", h.gpioRemove, []api.ValueType{i32}, []api.ValueType{i32}},

		{"mdelay", h.mdelay, []api.ValueType{i32}, nil},
		{"udelay", h.udelay, []api.ValueType{i32}, nil},

		{"do_div", h.doDiv, []api.ValueType{i32, i64}, []api.ValueType{i64}},
		{"__errno", h.errno, nil, []api.ValueType{i32}},
		{"putchar", h.putchar, []api.ValueType{i32}, []api.ValueType{i32}},
		{"puts", h.puts, []api.ValueType{i32}, []api.ValueType{i32}},
		{"strlen", h.strlen, []api.ValueType{i32}, []api.ValueType{i32}},
	}
}

// instantiate registers the env module in rt.
func (h *host) instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(HostModule)
	for _, f := range h.funcs() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.params, f.results).
			Export(f.name)
	}
	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInstantiation, err, "instantiate env module")
	}
	return mod, nil
}

func (h *host) bound(hook string) *noos.Env {
	if h.env == nil {
		errors.Violate(errors.Unbound(hook, 0))
	}
	return h.env
}

func mem(caller api.Module) guestMemory {
	return guestMemory{mem: caller.Memory()}
}

func status(rc int32) uint64 {
	return api.EncodeI32(rc)
}

func (h *host) ready(hook string) {
	if !h.arena.Ready() {
		errors.Violate(errors.Unbound(hook, 0))
	}
}

func (h *host) admalloc(_ context.Context, _ api.Module, stack []uint64) {
	h.ready("admalloc")
	stack[0] = uint64(h.arena.Alloc(uintptr(api.DecodeU32(stack[0]))))
}

func (h *host) adcalloc(_ context.Context, _ api.Module, stack []uint64) {
	h.ready("adcalloc")
	n, size := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	stack[0] = uint64(h.arena.Calloc(uintptr(n), uintptr(size)))
}

func (h *host) adfree(_ context.Context, _ api.Module, stack []uint64) {
	h.ready("adfree")
	h.arena.Free(admalloc.Addr(api.DecodeU32(stack[0])))
}

// spiInit hands back the parameter block as the descriptor, as the
// native hooks do.
func (h *host) spiInit(_ context.Context, caller api.Module, stack []uint64) {
	descOut, param := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	mem(caller).putU32(descOut, param)
	stack[0] = status(noos.OK)
}

func (h *host) spiDesc(m guestMemory, addr uint32) *noos.SPIDesc {
	if addr == 0 {
		errors.Violate(errors.Unbound("spi descriptor", 0))
	}
	var d noos.SPIDesc
	m.load(addr, &d)
	return &d
}

func (h *host) spiWriteAndRead(_ context.Context, caller api.Module, stack []uint64) {
	env := h.bound("spi_write_and_read")
	m := mem(caller)
	desc := h.spiDesc(m, api.DecodeU32(stack[0]))
	data, n := api.DecodeU32(stack[1]), api.DecodeU32(stack[2])
	if n == 0 {
		stack[0] = status(noos.OK)
		return
	}

	buf := append([]byte(nil), m.view(data, n)...)
	rc := env.SPIWriteAndRead(desc, &buf[0], uint16(n))
	m.write(data, buf)
	stack[0] = status(rc)
}

func (h *host) spiRemove(_ context.Context, caller api.Module, stack []uint64) {
	env := h.bound("spi_remove")
	addr := api.DecodeU32(stack[0])
	if addr == 0 {
		stack[0] = status(noos.OK)
		return
	}
	stack[0] = status(env.SPIRemove(h.spiDesc(mem(caller), addr)))
}

// gpioDesc reads a GPIO descriptor; address 0 is the absent line.
func gpioDesc(m guestMemory, addr uint32) *noos.GPIODesc {
	if addr == 0 {
		return nil
	}
	var d noos.GPIODesc
	m.load(addr, &d)
	return &d
}

func (h *host) gpioGet(_ context.Context, caller api.Module, stack []uint64) {
	m := mem(caller)
	descOut, param := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	var p noos.GPIOInitParam
	m.load(param, &p)
	if p.Unused() {
		m.putU32(descOut, 0)
	} else {
		m.putU32(descOut, param)
	}
	stack[0] = status(noos.OK)
}

func (h *host) gpioDirectionInput(_ context.Context, caller api.Module, stack []uint64) {
	env := h.bound("gpio_direction_input")
	stack[0] = status(env.GPIODirectionInput(gpioDesc(mem(caller), api.DecodeU32(stack[0])), 0))
}

func (h *host) gpioDirectionOutput(_ context.Context, caller api.Module, stack []uint64) {
	env := h.bound("gpio_direction_output")
	desc := gpioDesc(mem(caller), api.DecodeU32(stack[0]))
	stack[0] = status(env.GPIODirectionOutput(desc, uint8(api.DecodeU32(stack[1]))))
}

func (h *host) gpioSetValue(_ context.Context, caller api.Module, stack []uint64) {
	env := h.bound("gpio_set_value")
	desc := gpioDesc(mem(caller), api.DecodeU32(stack[0]))
	stack[0] = status(env.GPIOSetValue(desc, uint8(api.DecodeU32(stack[1]))))
}

func (h *host) gpioGetValue(_ context.Context, caller api.Module, stack []uint64) {
	env := h.bound("gpio_get_value")
	m := mem(caller)
	desc := gpioDesc(m, api.DecodeU32(stack[0]))
	var v uint8
	rc := env.GPIOGetValue(desc, &v)
	m.putU8(api.DecodeU32(stack[1]), v)
	stack[0] = status(rc)
}

func (h *host) gpioRemove(_ context.Context, caller api.Module, stack []uint64) {
	env := h.bound("gpio_remove")
	stack[0] = status(env.GPIORemove(gpioDesc(mem(caller), api.DecodeU32(stack[0]))))
}

func (h *host) mdelay(_ context.Context, _ api.Module, stack []uint64) {
	h.bound("mdelay").Mdelay(api.DecodeU32(stack[0]))
}

func (h *host) udelay(_ context.Context, _ api.Module, stack []uint64) {
	h.bound("udelay").Udelay(api.DecodeU32(stack[0]))
}

func (h *host) doDiv(_ context.Context, caller api.Module, stack []uint64) {
	env := h.bound("do_div")
	m := mem(caller)
	addr := api.DecodeU32(stack[0])
	n := m.u64(addr)
	rem := env.DoDiv(&n, stack[1])
	m.putU64(addr, n)
	stack[0] = rem
}

func (h *host) errno(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = uint64(h.layout.errno)
}

func (h *host) putchar(_ context.Context, _ api.Module, stack []uint64) {
	h.bound("putchar").Putchar(api.DecodeI32(stack[0]))
}

func (h *host) puts(_ context.Context, caller api.Module, stack []uint64) {
	env := h.bound("puts")
	s := append(mem(caller).cstring(api.DecodeU32(stack[0])), 0)
	env.Puts(&s[0])
	stack[0] = status(0)
}

func (h *host) strlen(_ context.Context, caller api.Module, stack []uint64) {
	stack[0] = uint64(len(mem(caller).cstring(api.DecodeU32(stack[0]))))
}
