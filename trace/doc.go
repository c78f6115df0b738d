// Package trace records SPI transactions to a sqlite database.
//
// A Recorder wraps the bus a device talks through and stores every frame
// it carries, decoded into register, direction and value:
//
//	db, err := trace.Open("bringup.db", trace.DefaultOptions())
//	rec := db.Record(bus)
//	dev := ad936x.NewWithoutReset(sim.New(), rec, hal.SleepDelay{}, heap)
//
// Rows are buffered and written in batches inside one transaction.
// Call Flush or Close on the recorder before reading them back.
package trace
