package interop

import (
	"sync/atomic"

	"github.com/wippyai/ad936x/errors"
)

var taken atomic.Bool

// Acquire claims the single device slot. A second claim before Release
// is a violation.
func Acquire() {
	if taken.Swap(true) {
		errors.Violate(errors.Singleton("attempt to create two AD9361 devices simultaneously"))
	}
}

// Release frees the device slot. Releasing a slot that was not claimed
// is a violation.
func Release() {
	if !taken.Swap(false) {
		errors.Violate(errors.Singleton("device slot released without being taken"))
	}
}

// Taken reports whether a device is live.
func Taken() bool {
	return taken.Load()
}
