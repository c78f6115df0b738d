package wasmhost

import (
	"bytes"
	"encoding/binary"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/internal/admalloc"
)

// guestMemory is bounds-checked access to the guest's linear memory.
// Out-of-bounds accesses come from a broken guest and panic; wazero
// turns the panic into a trap of the running call.
type guestMemory struct {
	mem api.Memory
}

func (m guestMemory) oob(op string, offset, n uint32) {
	errors.Violate(errors.New(errors.PhaseInterop, errors.KindOutOfRange).
		Op(op).
		Detail("guest address 0x%x+%d outside memory of %d bytes", offset, n, m.mem.Size()).
		Build())
}

// view returns the guest bytes at offset. Writes to the slice land in
// guest memory.
func (m guestMemory) view(offset, n uint32) []byte {
	b, ok := m.mem.Read(offset, n)
	if !ok {
		m.oob("read", offset, n)
	}
	return b
}

func (m guestMemory) write(offset uint32, b []byte) {
	if !m.mem.Write(offset, b) {
		m.oob("write", offset, uint32(len(b)))
	}
}

func (m guestMemory) u8(offset uint32) uint8 {
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		m.oob("read", offset, 1)
	}
	return v
}

func (m guestMemory) u32(offset uint32) uint32 {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		m.oob("read", offset, 4)
	}
	return v
}

func (m guestMemory) u64(offset uint32) uint64 {
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		m.oob("read", offset, 8)
	}
	return v
}

func (m guestMemory) putU8(offset uint32, v uint8) {
	if !m.mem.WriteByte(offset, v) {
		m.oob("write", offset, 1)
	}
}

func (m guestMemory) putU32(offset uint32, v uint32) {
	if !m.mem.WriteUint32Le(offset, v) {
		m.oob("write", offset, 4)
	}
}

func (m guestMemory) putU64(offset uint32, v uint64) {
	if !m.mem.WriteUint64Le(offset, v) {
		m.oob("write", offset, 8)
	}
}

// cstring returns the NUL-terminated string at offset, without the NUL.
func (m guestMemory) cstring(offset uint32) []byte {
	var out []byte
	for p := offset; ; p++ {
		c := m.u8(p)
		if c == 0 {
			return out
		}
		out = append(out, c)
	}
}

// store writes v packed little-endian at offset.
func (m guestMemory) store(offset uint32, v any) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		errors.Violate(errors.Wrap(errors.PhaseInterop, errors.KindInvalidData, err, "marshal guest struct"))
	}
	m.write(offset, buf.Bytes())
}

// load fills v from the packed little-endian bytes at offset.
func (m guestMemory) load(offset uint32, v any) {
	n := binary.Size(v)
	if err := binary.Read(bytes.NewReader(m.view(offset, uint32(n))), binary.LittleEndian, v); err != nil {
		errors.Violate(errors.Wrap(errors.PhaseInterop, errors.KindInvalidData, err, "unmarshal guest struct"))
	}
}

// Zero clears arena memory for adcalloc.
func (m guestMemory) Zero(addr admalloc.Addr, n uintptr) {
	clear(m.view(uint32(addr), uint32(n)))
}
