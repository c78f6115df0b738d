package trace

import (
	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/hal"
	"github.com/wippyai/ad936x/transaction"
)

type row struct {
	seq   int64
	tx    transaction.Transaction
	frame []byte
}

// Recorder is a hal.Bus that forwards to another bus and records every
// frame. It is not safe for concurrent use, like the buses it wraps.
type Recorder struct {
	db      *DB
	bus     hal.Bus
	session string
	seq     int64
	pending []row
	err     error
	log     *zap.Logger
}

var _ hal.Bus = (*Recorder)(nil)

// Record starts a new session over bus.
func (d *DB) Record(bus hal.Bus) *Recorder {
	id := xid.New().String()
	d.log.Info("trace session started", zap.String("session", id))
	return &Recorder{
		db:      d,
		bus:     bus,
		session: id,
		log:     d.log.With(zap.String("session", id)),
	}
}

// Session returns the session id rows are stored under.
func (r *Recorder) Session() string { return r.session }

// Transfer forwards buf to the wrapped bus and records the frame. Frames
// the codec cannot decode are forwarded but not recorded. A failed flush
// does not fail the transfer; it is reported by Flush and Close.
func (r *Recorder) Transfer(buf []byte) error {
	t, decodeErr := transaction.Decode(buf)
	if err := r.bus.Transfer(buf); err != nil {
		return err
	}
	if decodeErr != nil {
		r.log.Debug("frame not recorded", zap.Error(decodeErr))
		return nil
	}
	if !t.Write && len(buf) > 2 {
		t.Value = buf[2]
	}

	r.seq++
	r.pending = append(r.pending, row{seq: r.seq, tx: t, frame: append([]byte(nil), buf...)})
	if len(r.pending) >= r.db.opts.BatchSize {
		if err := r.Flush(); err != nil {
			r.log.Warn("trace flush failed", zap.Error(err))
		}
	}
	return nil
}

// Flush writes buffered rows in one transaction.
func (r *Recorder) Flush() error {
	if r.err != nil {
		return r.err
	}
	if len(r.pending) == 0 {
		return nil
	}

	tx, err := r.db.db.Begin()
	if err != nil {
		return r.fail(err)
	}
	stmt := tx.Stmt(r.db.insert)
	for _, p := range r.pending {
		if _, err := stmt.Exec(r.session, p.seq, p.tx.Write, int(p.tx.Register), p.tx.Length, int(p.tx.Value), p.frame); err != nil {
			tx.Rollback()
			return r.fail(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return r.fail(err)
	}

	r.log.Debug("trace flushed", zap.Int("rows", len(r.pending)))
	r.pending = r.pending[:0]
	return nil
}

func (r *Recorder) fail(err error) error {
	r.err = errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "write trace rows")
	return r.err
}

// Close flushes the remaining rows. The wrapped bus is left open.
func (r *Recorder) Close() error {
	return r.Flush()
}

// Count returns the number of frames recorded so far, flushed or not.
func (r *Recorder) Count() int64 { return r.seq }
