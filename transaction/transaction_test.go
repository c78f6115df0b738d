package transaction

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/ad936x/errors"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
		want  Transaction
		str   string
	}{
		{
			name:  "write product id",
			frame: []byte{0x80, 0x37, 0x00},
			want:  Transaction{Register: 0x37, Write: true, Length: 1, Value: 0},
			str:   "write reg 0x037 = 0x00",
		},
		{
			name:  "read product id",
			frame: []byte{0x00, 0x37, 0x00},
			want:  Transaction{Register: 0x37, Length: 1},
			str:   "read  reg 0x037",
		},
		{
			name:  "high address bits",
			frame: []byte{0x83, 0xFF, 0x5A},
			want:  Transaction{Register: 0x3FF, Write: true, Length: 1, Value: 0x5A},
			str:   "write reg 0x3ff = 0x5a",
		},
		{
			name:  "burst length",
			frame: []byte{0x72, 0x47, 0x00, 0x00},
			want:  Transaction{Register: 0x247, Length: 8},
			str:   "read  reg 0x247",
		},
		{
			name:  "bits between count and address are ignored",
			frame: []byte{0x0C, 0x10, 0x00},
			want:  Transaction{Register: 0x10, Length: 1},
			str:   "read  reg 0x010",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.frame)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Decode = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.str {
				t.Fatalf("String = %q, want %q", got.String(), tt.str)
			}
		})
	}
}

func TestDecodeShortFrame(t *testing.T) {
	for _, frame := range [][]byte{nil, {0x80}, {0x80, 0x37}} {
		_, err := Decode(frame)
		if err == nil {
			t.Fatalf("Decode(%x) succeeded", frame)
		}
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidData || e.Phase != errors.PhaseDecode {
			t.Fatalf("Decode(%x) error = %v, want decode invalid_data", frame, err)
		}
	}
}

func TestEncode(t *testing.T) {
	if got := EncodeRead(0x37); got != [3]byte{0x00, 0x37, 0x00} {
		t.Fatalf("EncodeRead = %x", got)
	}
	if got := EncodeWrite(0x17, 0x05); got != [3]byte{0x80, 0x17, 0x05} {
		t.Fatalf("EncodeWrite = %x", got)
	}
	if got := EncodeWrite(0x2A3, 0x11); got != [3]byte{0x82, 0xA3, 0x11} {
		t.Fatalf("EncodeWrite high = %x", got)
	}

	frame := Encode(Transaction{Register: 0x1E8, Length: 3})
	if len(frame) != 5 || frame[0] != 0x21 || frame[1] != 0xE8 {
		t.Fatalf("Encode burst = %x", frame)
	}
	back, err := Decode(frame)
	if err != nil || back.Register != 0x1E8 || back.Length != 3 || back.Write {
		t.Fatalf("Decode(Encode) = %+v, %v", back, err)
	}
}
