// Package wasmhost runs a wasm32 build of the no-OS AD9361 driver under
// wazero and presents it as a noos.Driver.
//
// The guest imports its platform layer from a host module named "env":
// the allocator (admalloc, adcalloc, adfree), SPI and GPIO hooks, delays
// and a few libc routines. Allocations come from an arena carved out of
// guest memory; SPI, GPIO, delay and console hooks are forwarded to the
// noos.Env handed to Init, so the guest drives the same peripherals a
// native driver would.
//
// # Guest ABI
//
// The guest must export "memory", "ad9361_init" and "ad9361_remove".
// Accessors are looked up by their C names (ad9361_get_temperature,
// ad9361_set_tx_attenuation, ...); a missing accessor returns
// -EOPNOTSUPP. Structs cross the boundary packed and little-endian in
// field order, and struct arguments are passed by address.
//
//	drv, err := wasmhost.Load(ctx, wasmBytes, wasmhost.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer drv.Close(ctx)
//	dev := ad936x.New(drv, bus, hal.SleepDelay{}, &resetb, ad936x.NewHeap(64))
//
// A trap inside the guest panics with an *errors.Violation of kind
// guest_trap: the driver state is unknown afterwards.
package wasmhost
