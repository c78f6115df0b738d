package wasmhost

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/wippyai/ad936x/noos"
)

// Minimal binary encoder for the guest modules used in tests.

const (
	tI32 = 0x7F
	tI64 = 0x7E
)

type sig struct {
	params, results []byte
}

func fn(params ...byte) sig { return sig{params: params} }

func (s sig) ret(results ...byte) sig {
	s.results = results
	return s
}

func (s sig) encode() []byte {
	b := []byte{0x60}
	b = binary.AppendUvarint(b, uint64(len(s.params)))
	b = append(b, s.params...)
	b = binary.AppendUvarint(b, uint64(len(s.results)))
	return append(b, s.results...)
}

type guestFunc struct {
	name   string
	typ    uint32
	locals uint32
	code   []byte
}

type moduleBuilder struct {
	types   []sig
	imports []guestFunc
	funcs   []guestFunc
	index   map[string]uint32
	memory  bool
}

func newModule() *moduleBuilder {
	return &moduleBuilder{index: map[string]uint32{}, memory: true}
}

func (b *moduleBuilder) typeOf(s sig) uint32 {
	for i, t := range b.types {
		if bytes.Equal(t.params, s.params) && bytes.Equal(t.results, s.results) {
			return uint32(i)
		}
	}
	b.types = append(b.types, s)
	return uint32(len(b.types) - 1)
}

// importFunc adds an env import. All imports precede exports.
func (b *moduleBuilder) importFunc(name string, s sig) {
	b.index[name] = uint32(len(b.imports))
	b.imports = append(b.imports, guestFunc{name: name, typ: b.typeOf(s)})
}

func (b *moduleBuilder) export(name string, s sig, locals uint32, code ...[]byte) {
	b.funcs = append(b.funcs, guestFunc{name: name, typ: b.typeOf(s), locals: locals, code: bytes.Join(code, nil)})
}

func (b *moduleBuilder) call(name string) []byte {
	idx, ok := b.index[name]
	if !ok {
		panic("unknown import " + name)
	}
	return ins(0x10, uint64(idx))
}

func wname(s string) []byte {
	return append(binary.AppendUvarint(nil, uint64(len(s))), s...)
}

func section(id byte, items [][]byte) []byte {
	content := binary.AppendUvarint(nil, uint64(len(items)))
	for _, it := range items {
		content = append(content, it...)
	}
	out := binary.AppendUvarint([]byte{id}, uint64(len(content)))
	return append(out, content...)
}

func (b *moduleBuilder) bytes() []byte {
	out := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}

	var types, imports, funcs, exports, code [][]byte
	for _, s := range b.types {
		types = append(types, s.encode())
	}
	for _, f := range b.imports {
		e := append(wname(HostModule), wname(f.name)...)
		imports = append(imports, binary.AppendUvarint(append(e, 0x00), uint64(f.typ)))
	}
	for i, f := range b.funcs {
		funcs = append(funcs, binary.AppendUvarint(nil, uint64(f.typ)))
		idx := uint64(len(b.imports) + i)
		exports = append(exports, binary.AppendUvarint(append(wname(f.name), 0x00), idx))

		body := []byte{0x00}
		if f.locals > 0 {
			body = binary.AppendUvarint([]byte{0x01}, uint64(f.locals))
			body = append(body, tI32)
		}
		body = append(body, f.code...)
		body = append(body, 0x0B)
		code = append(code, append(binary.AppendUvarint(nil, uint64(len(body))), body...))
	}
	if b.memory {
		exports = append(exports, append(wname("memory"), 0x02, 0x00))
	}

	out = append(out, section(1, types)...)
	if len(imports) > 0 {
		out = append(out, section(2, imports)...)
	}
	out = append(out, section(3, funcs)...)
	if b.memory {
		out = append(out, section(5, [][]byte{{0x00, 0x01}})...)
	}
	out = append(out, section(7, exports)...)
	return append(out, section(10, code)...)
}

func ins(op byte, imm ...uint64) []byte {
	b := []byte{op}
	for _, v := range imm {
		b = binary.AppendUvarint(b, v)
	}
	return b
}

func appendSleb(b []byte, v int64) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0) {
			return append(b, c)
		}
		b = append(b, c|0x80)
	}
}

func localGet(i uint64) []byte    { return ins(0x20, i) }
func localSet(i uint64) []byte    { return ins(0x21, i) }
func i32Const(v int32) []byte     { return appendSleb([]byte{0x41}, int64(v)) }
func i64Const(v int64) []byte     { return appendSleb([]byte{0x42}, v) }
func i32Load(off uint64) []byte   { return ins(0x28, 2, off) }
func i64Load(off uint64) []byte   { return ins(0x29, 3, off) }
func i32Store(off uint64) []byte  { return ins(0x36, 2, off) }
func i64Store(off uint64) []byte  { return ins(0x37, 3, off) }
func i32Store8(off uint64) []byte { return ins(0x3A, 0, off) }

var (
	opUnreachable = []byte{0x00}
	opDrop        = []byte{0x1A}
	opI32Add      = []byte{0x6A}
	opI32Or       = []byte{0x72}
	opI32ShrU     = []byte{0x76}
)

// packedOffset is the byte offset of field in the packed encoding of v.
func packedOffset(t *testing.T, v any, field string) int32 {
	t.Helper()
	rt := reflect.TypeOf(v)
	off := 0
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Name == field {
			return int32(off)
		}
		off += binary.Size(reflect.Zero(f.Type).Interface())
	}
	t.Fatalf("no field %s in %s", field, rt)
	return 0
}

// Phy layout of the test driver:
//
//	+0  temperature (m°C)
//	+4  tx attenuation
//	+8  params address
//	+12 SPI frame
//	+16 tx LO (i64)
//	+24 GPIO descriptor
const phyBytes = 32

// driverModule builds a stand-in driver exercising each host import.
func driverModule(t *testing.T) []byte {
	t.Helper()
	spiOff := packedOffset(t, noos.InitParam{}, "SPIParam")
	resetbOff := packedOffset(t, noos.InitParam{}, "GPIOResetb")

	b := newModule()
	b.importFunc("admalloc", fn(tI32).ret(tI32))
	b.importFunc("adfree", fn(tI32))
	b.importFunc("spi_write_and_read", fn(tI32, tI32, tI32).ret(tI32))
	b.importFunc("gpio_get", fn(tI32, tI32).ret(tI32))
	b.importFunc("gpio_set_value", fn(tI32, tI32).ret(tI32))
	b.importFunc("mdelay", fn(tI32))
	b.importFunc("udelay", fn(tI32))
	b.importFunc("do_div", fn(tI32, tI64).ret(tI64))
	b.importFunc("__errno", fn().ret(tI32))
	b.importFunc("putchar", fn(tI32).ret(tI32))

	ok := i32Const(0)

	// (phy_out, params)
	b.export("ad9361_init", fn(tI32, tI32).ret(tI32), 1,
		i32Const(phyBytes), b.call("admalloc"), localSet(2),
		localGet(0), localGet(2), i32Store(0),
		localGet(2), i32Const(2632), i32Store(0),
		localGet(2), localGet(1), i32Store(8),
		ok)

	b.export("ad9361_remove", fn(tI32).ret(tI32), 0,
		localGet(0), b.call("adfree"),
		ok)

	b.export("ad9361_get_temperature", fn(tI32, tI32).ret(tI32), 0,
		localGet(1), localGet(0), i32Load(0), i32Store(0),
		ok)

	b.export("ad9361_set_tx_attenuation", fn(tI32, tI32, tI32).ret(tI32), 0,
		localGet(0), localGet(2), i32Store(4),
		ok)

	b.export("ad9361_get_tx_attenuation", fn(tI32, tI32, tI32).ret(tI32), 0,
		localGet(2), localGet(0), i32Load(4), i32Store(0),
		ok)

	b.export("ad9361_get_rx_lo_freq", fn(tI32, tI32).ret(tI32), 0,
		localGet(1), i64Const(2400000000), i64Store(0),
		ok)

	// (phy, reg, val): single-byte write frame through the params SPI descriptor
	b.export("ad9361_spi_write", fn(tI32, tI32, tI32).ret(tI32), 0,
		localGet(0), localGet(1), i32Const(8), opI32ShrU, i32Const(0x80), opI32Or, i32Store8(12),
		localGet(0), localGet(1), i32Store8(13),
		localGet(0), localGet(2), i32Store8(14),
		localGet(0), i32Load(8), i32Const(spiOff), opI32Add,
		localGet(0), i32Const(12), opI32Add,
		i32Const(3),
		b.call("spi_write_and_read"))

	// stores hz / 1000
	b.export("ad9361_set_tx_lo_freq", fn(tI32, tI64).ret(tI32), 0,
		localGet(0), localGet(1), i64Store(16),
		localGet(0), i32Const(16), opI32Add, i64Const(1000), b.call("do_div"), opDrop,
		ok)

	b.export("ad9361_get_tx_lo_freq", fn(tI32, tI32).ret(tI32), 0,
		localGet(1), localGet(0), i64Load(16), i64Store(0),
		ok)

	// prints "ok\n"
	b.export("ad9361_get_tx_lo_power", fn(tI32, tI32).ret(tI32), 0,
		i32Const('o'), b.call("putchar"), opDrop,
		i32Const('k'), b.call("putchar"), opDrop,
		i32Const('\n'), b.call("putchar"), opDrop,
		localGet(1), i32Const(1), i32Store8(0),
		ok)

	b.export("ad9361_tx_mute", fn(tI32, tI32).ret(tI32), 0,
		localGet(1), b.call("mdelay"),
		localGet(1), b.call("udelay"),
		ok)

	// errno round trip
	b.export("ad9361_ensm_get_state", fn(tI32).ret(tI32), 0,
		b.call("__errno"), i32Const(5), i32Store(0),
		b.call("__errno"), i32Load(0))

	// drives RESETB to en
	b.export("ad9361_set_rx_fir_en_dis", fn(tI32, tI32).ret(tI32), 0,
		localGet(0), i32Const(24), opI32Add,
		localGet(0), i32Load(8), i32Const(resetbOff), opI32Add,
		b.call("gpio_get"), opDrop,
		localGet(0), i32Load(24), localGet(1), b.call("gpio_set_value"))

	b.export("ad9361_get_rx_rf_bandwidth", fn(tI32, tI32).ret(tI32), 0,
		opUnreachable)

	return b.bytes()
}
