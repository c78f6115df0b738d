package transaction

import (
	"fmt"

	"github.com/wippyai/ad936x/errors"
)

// FrameSize is the size of a single-byte register access.
const FrameSize = 3

// MaxRegister is the highest addressable register.
const MaxRegister = 0x3FF

const (
	writeBit    = 0x80
	countShift  = 4
	countMask   = 0x7
	addrHighBit = 0x3
)

// Transaction is one decoded register access.
type Transaction struct {
	Register uint16
	Write    bool
	Length   int
	Value    uint8
}

// Decode parses the instruction word and first data byte of frame.
func Decode(frame []byte) (Transaction, error) {
	if len(frame) < FrameSize {
		return Transaction{}, errors.InvalidData(errors.PhaseDecode,
			fmt.Sprintf("frame of %d bytes, need at least %d", len(frame), FrameSize))
	}
	return Transaction{
		Register: uint16(frame[1]) | uint16(frame[0]&addrHighBit)<<8,
		Write:    frame[0]&writeBit != 0,
		Length:   int((frame[0]>>countShift)&countMask) + 1,
		Value:    frame[2],
	}, nil
}

// Header returns the two-byte instruction word for t.
func (t Transaction) Header() [2]byte {
	b0 := byte(t.Register>>8) & addrHighBit
	if t.Write {
		b0 |= writeBit
	}
	n := t.Length
	if n < 1 {
		n = 1
	}
	b0 |= (byte(n-1) & countMask) << countShift
	return [2]byte{b0, byte(t.Register)}
}

// Encode returns a frame for t with room for Length data bytes. The
// first data byte carries Value on writes and is zero on reads.
func Encode(t Transaction) []byte {
	n := t.Length
	if n < 1 {
		n = 1
	}
	h := t.Header()
	frame := make([]byte, 2+n)
	frame[0], frame[1] = h[0], h[1]
	if t.Write {
		frame[2] = t.Value
	}
	return frame
}

// EncodeRead returns a single-byte read frame for reg.
func EncodeRead(reg uint16) [FrameSize]byte {
	h := Transaction{Register: reg, Length: 1}.Header()
	return [FrameSize]byte{h[0], h[1], 0}
}

// EncodeWrite returns a single-byte write frame setting reg to v.
func EncodeWrite(reg uint16, v uint8) [FrameSize]byte {
	h := Transaction{Register: reg, Write: true, Length: 1}.Header()
	return [FrameSize]byte{h[0], h[1], v}
}

func (t Transaction) String() string {
	if t.Write {
		return fmt.Sprintf("write reg 0x%03x = 0x%02x", t.Register, t.Value)
	}
	return fmt.Sprintf("read  reg 0x%03x", t.Register)
}
