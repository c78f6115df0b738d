// Package errors provides structured error types for the ad936x bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the operation name, the raw driver status code and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAccess, errors.KindStatus).
//		Op("tx_attenuation").
//		Status(-22).
//		Detail("driver rejected value").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Status(errors.PhaseAccess, "tx_attenuation", -22)
//	code, ok := errors.StatusCode(err)
//
// Programmer errors (using a device before Init, a second live device,
// heap exhaustion) are not returned. They are raised with Violate and
// surface as a *Violation panic.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
