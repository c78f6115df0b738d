package ad936x

import (
	"go.uber.org/zap"

	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/noos"
)

// handle is the driver and state an accessor runs against. Obtaining one
// checks that the device is initialized and has not moved.
type handle struct {
	drv noos.Driver
	phy noos.Phy
}

func (h handle) status(op string, rc int32) error {
	if rc == noos.OK {
		return nil
	}
	Logger().Debug("driver call failed", zap.String("op", op), zap.Int32("status", rc))
	return errors.Status(errors.PhaseAccess, op, rc)
}

// codec converts between the raw value R a driver call takes or fills in
// and the value T the API exposes. Setter and getter of a pair share one
// codec.
type codec[R, T any] struct {
	toRaw   func(T) R
	fromRaw func(R) T
}

func identity[T any]() codec[T, T] {
	return codec[T, T]{
		toRaw:   func(v T) T { return v },
		fromRaw: func(v T) T { return v },
	}
}

func convert[R, T ~uint8 | ~uint32 | ~int32](fromRaw func(R) T) codec[R, T] {
	return codec[R, T]{
		toRaw:   func(v T) R { return R(v) },
		fromRaw: fromRaw,
	}
}

var (
	boolCodec = codec[uint8, bool]{toRaw: boolToRaw, fromRaw: boolFromRaw}
	muteCodec = codec[uint32, TxState]{
		toRaw: func(s TxState) uint32 {
			if s {
				return 1
			}
			return 0
		},
		fromRaw: func(v uint32) TxState { return v != 0 },
	}
)

// property is one device-wide driver value. Any of the call shapes may
// be nil when the driver has no such entry point:
//
//	set    fallible write
//	get    fallible read through an out-pointer
//	peek   infallible read through an out-pointer
//	value  infallible read of the return value
type property[R, T any] struct {
	name  string
	codec codec[R, T]
	set   func(noos.Driver, noos.Phy, R) int32
	get   func(noos.Driver, noos.Phy, *R) int32
	peek  func(noos.Driver, noos.Phy, *R)
	value func(noos.Driver, noos.Phy) R
}

func (p *property[R, T]) apply(h handle, v T) error {
	return h.status("set_"+p.name, p.set(h.drv, h.phy, p.codec.toRaw(v)))
}

func (p *property[R, T]) read(h handle) (T, error) {
	var raw R
	if err := h.status("get_"+p.name, p.get(h.drv, h.phy, &raw)); err != nil {
		var zero T
		return zero, err
	}
	return p.codec.fromRaw(raw), nil
}

func (p *property[R, T]) readInfallible(h handle) T {
	var raw R
	p.peek(h.drv, h.phy, &raw)
	return p.codec.fromRaw(raw)
}

func (p *property[R, T]) readValue(h handle) T {
	return p.codec.fromRaw(p.value(h.drv, h.phy))
}

// channelProperty is a per-channel driver value. Channel 0 is RX1/TX1,
// channel 1 is RX2/TX2.
type channelProperty[R, T any] struct {
	name  string
	codec codec[R, T]
	set   func(noos.Driver, noos.Phy, uint8, R) int32
	get   func(noos.Driver, noos.Phy, uint8, *R) int32
}

func (p *channelProperty[R, T]) apply(h handle, ch uint8, v T) error {
	return h.status("set_"+p.name, p.set(h.drv, h.phy, ch, p.codec.toRaw(v)))
}

func (p *channelProperty[R, T]) read(h handle, ch uint8) (T, error) {
	var raw R
	if err := h.status("get_"+p.name, p.get(h.drv, h.phy, ch, &raw)); err != nil {
		var zero T
		return zero, err
	}
	return p.codec.fromRaw(raw), nil
}
