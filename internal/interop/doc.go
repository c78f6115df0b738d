// Package interop holds every piece of process-wide state the AD9361
// driver needs: the single-device flag, the driver heap, the trampoline
// slots binding platform hooks to the device's peripherals, and the libc
// odds and ends (errno, console output).
//
// The device lifecycle is the only caller of the mutating entry points:
//
//	interop.Acquire()                                    // New
//	interop.Install(&params, &bus, &delay, resetb, heap) // Init
//	interop.Teardown()                                   // Close
//	interop.Release()                                    // Close
//
// Install instantiates one adapter per peripheral type and stores it with
// the peripheral's address. Hooks invoked by the driver look the adapter
// up by the slot handle recorded in the SPI or GPIO descriptor and hand
// it the stored address, restoring the concrete type. Only one device
// may be live, so only one set of concrete types is ever installed.
package interop
