package trace

import (
	"database/sql"
	"fmt"

	// registers the pure-Go "sqlite" driver
	_ "github.com/glebarez/go-sqlite"
	"go.uber.org/zap"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/transaction"
)

const schema = `CREATE TABLE IF NOT EXISTS transactions (
	session  TEXT    NOT NULL,
	seq      INTEGER NOT NULL,
	write    INTEGER NOT NULL,
	register INTEGER NOT NULL,
	length   INTEGER NOT NULL,
	value    INTEGER NOT NULL,
	frame    BLOB    NOT NULL,
	PRIMARY KEY (session, seq)
)`

const insertRow = `INSERT INTO transactions
	(session, seq, write, register, length, value, frame)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

// Options configures a trace database.
type Options struct {
	// BatchSize is the number of rows buffered before a flush.
	BatchSize int
	Logger    *zap.Logger
}

// DefaultOptions returns the default trace configuration.
func DefaultOptions() Options {
	return Options{BatchSize: 256}
}

// DB is an open trace database.
type DB struct {
	db     *sql.DB
	insert *sql.Stmt
	opts   Options
	log    *zap.Logger
}

// Open opens or creates the trace database at path.
func Open(path string, opts Options) (*DB, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultOptions().BatchSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "open trace database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "create trace schema")
	}
	insert, err := db.Prepare(insertRow)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "prepare trace insert")
	}

	log.Debug("trace database opened", zap.String("path", path))
	return &DB{db: db, insert: insert, opts: opts, log: log}, nil
}

// Close closes the database. Recorders must be flushed first.
func (d *DB) Close() error {
	d.insert.Close()
	return d.db.Close()
}

// Sessions lists the recorded session ids, oldest first.
func (d *DB) Sessions() ([]string, error) {
	rows, err := d.db.Query(`SELECT session FROM transactions GROUP BY session ORDER BY MIN(rowid)`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Load returns the transactions of a session in bus order.
func (d *DB) Load(session string) ([]transaction.Transaction, error) {
	rows, err := d.db.Query(
		`SELECT write, register, length, value FROM transactions WHERE session = ? ORDER BY seq`,
		session)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", session, err)
	}
	defer rows.Close()

	var out []transaction.Transaction
	for rows.Next() {
		var (
			t     transaction.Transaction
			write int
		)
		if err := rows.Scan(&write, &t.Register, &t.Length, &t.Value); err != nil {
			return nil, fmt.Errorf("load session %s: %w", session, err)
		}
		t.Write = write != 0
		out = append(out, t)
	}
	return out, rows.Err()
}
