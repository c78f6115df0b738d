package transaction

import (
	"go.uber.org/zap"
)

// Power-on contents of the registers the driver polls during bring-up.
// These registers are read-only: driver writes to them are dropped.
var resetState = map[uint16]uint8{
	0x00A: 0x03, // BBPLL divider
	0x00E: 0x03, // temperature
	0x016: 0x00, // calibration control, all done
	0x037: 0x0A, // product ID, rev 2
	0x05E: 0x80, // BBPLL lock
	0x1E6: 0x01,
	0x1E8: 0x60,
	0x1EA: 0x60,
	0x1EC: 0x60,
	0x244: 0xC0, // RX CP calibration done
	0x247: 0x02, // RX synth lock
	0x284: 0xC0, // TX CP calibration done
	0x287: 0x02, // TX synth lock
}

// Simulator is a register-file hal.Bus.
type Simulator struct {
	regs     [MaxRegister + 1]uint8
	readOnly [MaxRegister + 1]bool
	writes   []Transaction
	reads    int
	fault    error
	log      *zap.Logger
}

// NewSimulator returns a simulator in its power-on state.
func NewSimulator() *Simulator {
	s := &Simulator{log: zap.NewNop()}
	s.Reset()
	return s
}

// SetLogger logs every transfer at debug level. Nil disables logging.
func (s *Simulator) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// Reset restores the power-on register file and clears the history.
func (s *Simulator) Reset() {
	s.regs = [MaxRegister + 1]uint8{}
	s.readOnly = [MaxRegister + 1]bool{}
	for reg, v := range resetState {
		s.regs[reg] = v
		s.readOnly[reg] = true
	}
	s.writes = nil
	s.reads = 0
	s.fault = nil
}

// Force sets reg to v regardless of whether it is read-only.
func (s *Simulator) Force(reg uint16, v uint8) {
	s.regs[reg&MaxRegister] = v
}

// Register returns the current contents of reg.
func (s *Simulator) Register(reg uint16) uint8 {
	return s.regs[reg&MaxRegister]
}

// SetFault makes every following transfer fail with err until it is
// cleared with nil.
func (s *Simulator) SetFault(err error) {
	s.fault = err
}

// Writes returns the write transactions seen since the last Reset or
// ClearHistory, oldest first.
func (s *Simulator) Writes() []Transaction {
	out := make([]Transaction, len(s.writes))
	copy(out, s.writes)
	return out
}

// Reads returns the number of read transactions seen.
func (s *Simulator) Reads() int {
	return s.reads
}

// ClearHistory forgets recorded transactions without touching registers.
func (s *Simulator) ClearHistory() {
	s.writes = nil
	s.reads = 0
}

// Transfer services one frame in place. Multi-byte accesses walk upward
// from the addressed register.
func (s *Simulator) Transfer(buf []byte) error {
	if s.fault != nil {
		return s.fault
	}
	t, err := Decode(buf)
	if err != nil {
		return err
	}
	s.log.Debug("transfer", zap.Stringer("tx", t))

	for i := 0; i < t.Length && 2+i < len(buf); i++ {
		reg := (t.Register + uint16(i)) & MaxRegister
		if !t.Write {
			buf[2+i] = s.regs[reg]
			continue
		}
		if s.readOnly[reg] {
			s.log.Debug("write to read-only register dropped", zap.Uint16("reg", reg))
			continue
		}
		s.regs[reg] = buf[2+i]
	}

	if t.Write {
		s.writes = append(s.writes, t)
	} else {
		s.reads++
	}
	return nil
}
