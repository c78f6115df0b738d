package hal

import "time"

// SleepDelay implements Delay with time.Sleep.
type SleepDelay struct{}

func (SleepDelay) DelayMs(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }
func (SleepDelay) DelayUs(us uint32) { time.Sleep(time.Duration(us) * time.Microsecond) }

// NoPin is the pin type for devices built without a reset line.
// Its methods are never called.
type NoPin struct{}

func (NoPin) SetLow() error  { return nil }
func (NoPin) SetHigh() error { return nil }

// CountingDelay records requested delays without blocking.
type CountingDelay struct {
	Ms uint64
	Us uint64
}

func (d *CountingDelay) DelayMs(ms uint32) { d.Ms += uint64(ms) }
func (d *CountingDelay) DelayUs(us uint32) { d.Us += uint64(us) }
