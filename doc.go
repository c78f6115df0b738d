// Package ad936x drives an Analog Devices AD9361 (or AD9363/AD9364) RF
// transceiver through the no-OS ad9361 driver.
//
// The no-OS driver is foreign code with a fixed C ABI: it allocates from a
// heap, talks to the chip over SPI, toggles a reset line and sleeps. This
// package supplies all of that from Go values the caller owns, and wraps
// the driver's entry points in a typed API.
//
// # Architecture Overview
//
//	ad936x/              Device handle, typed accessors, FIR and gain tables
//	├── hal/             Bus, OutputPin and Delay capabilities
//	│   └── periph/      periph.io SPI and GPIO adapters
//	├── noos/            driver ABI: parameter block, hooks, raw entry points
//	│   └── sim/         in-process driver for tests and dry runs
//	├── transaction/     SPI frame codec and register file simulator
//	├── trace/           sqlite recorder for SPI transactions
//	├── wasmhost/        wazero host for a wasm32 build of the driver
//	├── errors/          structured errors and invariant violations
//	└── internal/
//	    ├── admalloc/    bump arena behind admalloc/adcalloc/adfree
//	    └── interop/     process-wide hook state
//
// # Quick Start
//
//	bus := transaction.NewSimulator()
//	dev := ad936x.NewWithoutReset(sim.New(), bus, hal.SleepDelay{}, ad936x.NewHeap(540))
//	defer dev.Close()
//
//	if err := dev.Init(noos.DefaultInitParam()); err != nil {
//	    log.Fatal(err)
//	}
//
//	t, err := dev.GetTemperature()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%.1f C\n", t)
//
// # Single Device
//
// The driver keeps its platform state in globals, so only one Device
// may exist at a time. New panics while another is live; Close releases
// the slot.
//
// A Device must not be copied. The driver holds pointers into it once
// Init has run, and a copied Device panics on first use.
//
// # Errors
//
// Driver status codes come back as *errors.Error with Kind
// errors.KindStatus; errors.StatusCode returns the raw code. Misuse, such
// as calling an accessor before Init or passing an out-of-range interface
// delay, panics with *errors.Violation.
//
// # Heap Sizing
//
// Every driver allocation comes from the heap passed to New. Running out
// panics with a Violation of kind heap_exhausted. 540 words is enough
// for the bundled drivers.
package ad936x
