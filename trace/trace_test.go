package trace

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/wippyai/ad936x/transaction"
)

func openTest(t *testing.T, batch int) *DB {
	t.Helper()
	opts := DefaultOptions()
	opts.BatchSize = batch
	db, err := Open(filepath.Join(t.TempDir(), "trace.db"), opts)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func transfer(t *testing.T, r *Recorder, frame [3]byte) [3]byte {
	t.Helper()
	if err := r.Transfer(frame[:]); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	return frame
}

func TestRecordAndLoad(t *testing.T) {
	db := openTest(t, 256)
	bus := transaction.NewSimulator()
	rec := db.Record(bus)

	transfer(t, rec, transaction.EncodeWrite(0x073, 0x28))
	got := transfer(t, rec, transaction.EncodeRead(0x037))
	if got[2] != 0x0A {
		t.Fatalf("product id through recorder = 0x%02x", got[2])
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	rows, err := db.Load(rec.Session())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []transaction.Transaction{
		{Register: 0x073, Write: true, Length: 1, Value: 0x28},
		{Register: 0x037, Write: false, Length: 1, Value: 0x0A},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
	if bus.Register(0x073) != 0x28 {
		t.Fatal("write did not reach the wrapped bus")
	}
}

func TestBatchFlush(t *testing.T) {
	db := openTest(t, 4)
	rec := db.Record(transaction.NewSimulator())

	for i := range 10 {
		transfer(t, rec, transaction.EncodeWrite(0x100, uint8(i)))
	}
	rows, err := db.Load(rec.Session())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 8 {
		t.Fatalf("rows before Close = %d, want 8", len(rows))
	}

	rec.Close()
	rows, _ = db.Load(rec.Session())
	if len(rows) != 10 || rows[9].Value != 9 {
		t.Fatalf("rows after Close = %v", rows)
	}
	if rec.Count() != 10 {
		t.Fatalf("Count = %d", rec.Count())
	}
}

func TestSessions(t *testing.T) {
	db := openTest(t, 256)

	a := db.Record(transaction.NewSimulator())
	transfer(t, a, transaction.EncodeRead(0x00E))
	a.Close()

	b := db.Record(transaction.NewSimulator())
	transfer(t, b, transaction.EncodeRead(0x00E))
	b.Close()

	if a.Session() == b.Session() {
		t.Fatal("sessions share an id")
	}
	ids, err := db.Sessions()
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != a.Session() || ids[1] != b.Session() {
		t.Fatalf("sessions = %v", ids)
	}
}

func TestBusErrorNotRecorded(t *testing.T) {
	db := openTest(t, 256)
	bus := transaction.NewSimulator()
	bus.SetFault(stderrors.New("bus off"))
	rec := db.Record(bus)

	frame := transaction.EncodeRead(0x037)
	if err := rec.Transfer(frame[:]); err == nil {
		t.Fatal("bus fault not returned")
	}
	if err := rec.Transfer([]byte{0x80}); err == nil {
		t.Fatal("short frame reached a faulted bus without error")
	}
	rec.Close()

	if rows, _ := db.Load(rec.Session()); len(rows) != 0 {
		t.Fatalf("rows = %v, want none", rows)
	}
}
