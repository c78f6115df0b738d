package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tebeka/atexit"
	"go.uber.org/zap"

	"github.com/wippyai/ad936x"
	"github.com/wippyai/ad936x/hal"
	"github.com/wippyai/ad936x/hal/periph"
	"github.com/wippyai/ad936x/noos"
	"github.com/wippyai/ad936x/noos/sim"
	"github.com/wippyai/ad936x/trace"
	"github.com/wippyai/ad936x/transaction"
	"github.com/wippyai/ad936x/wasmhost"
)

// radio is the device type the CLI drives: any bus, wall-clock delays
// and any reset line.
type radio = ad936x.Device[hal.Bus, hal.SleepDelay, hal.OutputPin]

// session is an opened device and everything it runs on.
type session struct {
	dev      *radio
	bus      string
	driver   string
	recorder *trace.Recorder
	closers  []func() error
	log      *zap.Logger
}

// openSession opens the bus, driver and optional trace recorder named by
// cfg, then creates and initializes the device.
func openSession(ctx context.Context, cfg *Config, log *zap.Logger) (s *session, err error) {
	s = &session{log: log}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	bus, reset, err := s.openBus(cfg.Device, log)
	if err != nil {
		return nil, err
	}

	if cfg.Trace.DB != "" {
		db, err := trace.Open(cfg.Trace.DB, trace.Options{BatchSize: cfg.Trace.BatchSize, Logger: log.Named("trace")})
		if err != nil {
			return nil, err
		}
		s.recorder = db.Record(bus)
		s.push(db.Close)
		s.push(s.recorder.Close)
		bus = s.recorder
	}

	drv, err := s.openDriver(ctx, cfg.Driver, log)
	if err != nil {
		return nil, err
	}

	s.dev = ad936x.New[hal.Bus, hal.SleepDelay, hal.OutputPin](drv, bus, hal.SleepDelay{}, reset, ad936x.NewHeap(cfg.Device.HeapWords))
	s.push(s.dev.Close)

	if err := s.dev.Init(cfg.InitParam()); err != nil {
		return nil, fmt.Errorf("init device: %w", err)
	}
	if err := s.configure(cfg.Params); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) openBus(cfg DeviceConfig, log *zap.Logger) (hal.Bus, *hal.OutputPin, error) {
	if cfg.SPI == "" {
		simBus := transaction.NewSimulator()
		simBus.SetLogger(log.Named("bus"))
		s.bus = "register simulator"
		return simBus, nil, nil
	}

	hw, err := periph.Open(periph.Config{SPI: cfg.SPI, Hz: cfg.SPIHz, ResetPin: cfg.ResetPin})
	if err != nil {
		return nil, nil, err
	}
	s.push(hw.Close)
	s.bus = cfg.SPI

	if hw.Reset == nil {
		return hw.Bus, nil, nil
	}
	var pin hal.OutputPin = hw.Reset
	return hw.Bus, &pin, nil
}

func (s *session) openDriver(ctx context.Context, cfg DriverConfig, log *zap.Logger) (noos.Driver, error) {
	if cfg.Wasm == "" {
		drv := sim.New()
		drv.SetLogger(log.Named("sim"))
		s.driver = "simulated"
		return drv, nil
	}

	data, err := os.ReadFile(cfg.Wasm)
	if err != nil {
		return nil, fmt.Errorf("read driver: %w", err)
	}
	drv, err := wasmhost.Load(ctx, data, wasmhost.Options{
		HeapWords:        cfg.HeapWords,
		MemoryLimitPages: cfg.MemoryLimitPages,
		Logger:           log.Named("wasmhost"),
	})
	if err != nil {
		return nil, err
	}
	s.push(func() error { return drv.Close(ctx) })
	s.driver = cfg.Wasm
	return drv, nil
}

// configure applies the settings that have no init parameter.
func (s *session) configure(p ParamsConfig) error {
	if p.RxSamplingHz != 0 {
		if err := s.dev.SetRxSamplingFreq(p.RxSamplingHz); err != nil {
			return err
		}
	}
	if p.TxSamplingHz != 0 {
		if err := s.dev.SetTxSamplingFreq(p.TxSamplingHz); err != nil {
			return err
		}
	}
	if p.RxFIR {
		if err := s.dev.SetRxFirEnDis(true); err != nil {
			return err
		}
	}
	if p.TxFIR {
		if err := s.dev.SetTxFirEnDis(true); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) push(fn func() error) {
	s.closers = append(s.closers, fn)
}

// Close releases everything in reverse order of opening. It is
// registered with atexit so a trace is flushed however the process ends.
func (s *session) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	if s.recorder != nil {
		s.log.Info("trace recorded",
			zap.String("session", s.recorder.Session()),
			zap.Int64("frames", s.recorder.Count()))
		s.recorder = nil
	}
	return first
}

func (s *session) closeAtExit() {
	atexit.Register(func() {
		if err := s.Close(); err != nil {
			s.log.Warn("close failed", zap.Error(err))
		}
	})
}
