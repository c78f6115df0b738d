package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"github.com/wippyai/ad936x"
	"github.com/wippyai/ad936x/errors"
	"github.com/wippyai/ad936x/noos"
)

// Config is the complete CLI configuration.
type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Driver  DriverConfig  `yaml:"driver"`
	Params  ParamsConfig  `yaml:"params"`
	Logging LoggingConfig `yaml:"logging"`
	Trace   TraceConfig   `yaml:"trace"`
}

// DeviceConfig selects the hardware. An empty SPI port runs against the
// register simulator.
type DeviceConfig struct {
	SPI       string `yaml:"spi"`
	SPIHz     int64  `yaml:"spi_hz"`
	ResetPin  string `yaml:"reset_pin"`
	HeapWords int    `yaml:"heap_words"`
}

// DriverConfig selects the driver. An empty Wasm path uses the built-in
// simulated driver.
type DriverConfig struct {
	Wasm             string `yaml:"wasm"`
	HeapWords        int    `yaml:"heap_words"`
	MemoryLimitPages uint32 `yaml:"memory_limit_pages"`
}

// ParamsConfig overrides init parameters. Zero sampling rates keep the
// rates derived from the path clocks.
type ParamsConfig struct {
	RxLoHz           uint64 `yaml:"rx_lo_hz"`
	TxLoHz           uint64 `yaml:"tx_lo_hz"`
	RxBandwidthHz    uint32 `yaml:"rx_bandwidth_hz"`
	TxBandwidthHz    uint32 `yaml:"tx_bandwidth_hz"`
	RxSamplingHz     uint32 `yaml:"rx_sampling_hz"`
	TxSamplingHz     uint32 `yaml:"tx_sampling_hz"`
	TxAttenuationMdB int32  `yaml:"tx_attenuation_mdb"`
	Rx1GainMode      string `yaml:"rx1_gain_mode"`
	Rx2GainMode      string `yaml:"rx2_gain_mode"`
	RxPort           uint32 `yaml:"rx_port"`
	TxPort           uint32 `yaml:"tx_port"`
	RxFIR            bool   `yaml:"rx_fir"`
	TxFIR            bool   `yaml:"tx_fir"`
}

// LoggingConfig configures zap and the optional rotating log file.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// TraceConfig enables the sqlite transaction recorder.
type TraceConfig struct {
	DB        string `yaml:"db"`
	BatchSize int    `yaml:"batch_size"`
}

const (
	minLoHz        = 70_000_000
	maxLoHz        = 6_000_000_000
	maxBandwidthHz = 56_000_000
	maxAttenMdB    = 89_750
)

var gainModes = map[string]ad936x.RfGainControlMode{
	"manual":      ad936x.Manual,
	"fast_attack": ad936x.FastAttackAgc,
	"slow_attack": ad936x.SlowAttackAgc,
	"hybrid":      ad936x.HybridAgc,
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	p := noos.DefaultInitParam()
	return &Config{
		Device: DeviceConfig{
			SPIHz:     10_000_000,
			HeapWords: 1024,
		},
		Driver: DriverConfig{
			HeapWords:        16384,
			MemoryLimitPages: 256,
		},
		Params: ParamsConfig{
			RxLoHz:           p.RxSynthesizerFrequencyHz,
			TxLoHz:           p.TxSynthesizerFrequencyHz,
			RxBandwidthHz:    p.RFRxBandwidthHz,
			TxBandwidthHz:    p.RFTxBandwidthHz,
			TxAttenuationMdB: p.TxAttenuationMdB,
			Rx1GainMode:      gainModeName(ad936x.RfGainControlMode(p.GCRx1Mode)),
			Rx2GainMode:      gainModeName(ad936x.RfGainControlMode(p.GCRx2Mode)),
			RxPort:           p.RxRFPortInputSelect,
			TxPort:           p.TxRFPortInputSelect,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Trace: TraceConfig{
			BatchSize: 256,
		},
	}
}

func gainModeName(m ad936x.RfGainControlMode) string {
	for name, mode := range gainModes {
		if mode == m {
			return name
		}
	}
	return "manual"
}

// LoadConfig builds the configuration: defaults, then the YAML file at
// path (if any), then AD936X_* variables from getenv, then validation.
func LoadConfig(path string, getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg, getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "read config "+path)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse config "+path)
	}
	return nil
}

type envOverride struct {
	name  string
	apply func(cfg *Config, v string) error
}

var envOverrides = []envOverride{
	{"AD936X_SPI", func(c *Config, v string) error { c.Device.SPI = v; return nil }},
	{"AD936X_SPI_HZ", func(c *Config, v string) error { return parseInto(&c.Device.SPIHz, v) }},
	{"AD936X_RESET_PIN", func(c *Config, v string) error { c.Device.ResetPin = v; return nil }},
	{"AD936X_HEAP_WORDS", func(c *Config, v string) error { return parseInto(&c.Device.HeapWords, v) }},
	{"AD936X_WASM", func(c *Config, v string) error { c.Driver.Wasm = v; return nil }},
	{"AD936X_RX_LO_HZ", func(c *Config, v string) error { return parseInto(&c.Params.RxLoHz, v) }},
	{"AD936X_TX_LO_HZ", func(c *Config, v string) error { return parseInto(&c.Params.TxLoHz, v) }},
	{"AD936X_LOG_LEVEL", func(c *Config, v string) error { c.Logging.Level = v; return nil }},
	{"AD936X_LOG_FILE", func(c *Config, v string) error { c.Logging.File = v; return nil }},
	{"AD936X_TRACE_DB", func(c *Config, v string) error { c.Trace.DB = v; return nil }},
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) error {
	for _, o := range envOverrides {
		v := getenv(o.name)
		if v == "" {
			continue
		}
		if err := o.apply(cfg, v); err != nil {
			return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, o.name)
		}
	}
	return nil
}

func parseInto[T int | int64 | uint64](dst *T, v string) error {
	n, err := strconv.ParseInt(strings.ReplaceAll(v, "_", ""), 0, 64)
	if err != nil {
		return err
	}
	*dst = T(n)
	return nil
}

func invalid(format string, args ...any) error {
	return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf(format, args...))
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Device.HeapWords <= 0 {
		return invalid("device.heap_words must be positive, got %d", c.Device.HeapWords)
	}
	if c.Device.SPIHz <= 0 {
		return invalid("device.spi_hz must be positive, got %d", c.Device.SPIHz)
	}
	if c.Driver.Wasm != "" && c.Driver.HeapWords <= 0 {
		return invalid("driver.heap_words must be positive, got %d", c.Driver.HeapWords)
	}

	p := c.Params
	for name, hz := range map[string]uint64{"rx_lo_hz": p.RxLoHz, "tx_lo_hz": p.TxLoHz} {
		if hz < minLoHz || hz > maxLoHz {
			return invalid("params.%s %d outside [%d, %d]", name, hz, minLoHz, maxLoHz)
		}
	}
	for name, hz := range map[string]uint32{"rx_bandwidth_hz": p.RxBandwidthHz, "tx_bandwidth_hz": p.TxBandwidthHz} {
		if hz == 0 || hz > maxBandwidthHz {
			return invalid("params.%s %d outside [1, %d]", name, hz, maxBandwidthHz)
		}
	}
	if p.TxAttenuationMdB < 0 || p.TxAttenuationMdB > maxAttenMdB {
		return invalid("params.tx_attenuation_mdb %d outside [0, %d]", p.TxAttenuationMdB, maxAttenMdB)
	}
	for _, mode := range []string{p.Rx1GainMode, p.Rx2GainMode} {
		if _, ok := gainModes[mode]; !ok {
			return invalid("unknown gain mode %q", mode)
		}
	}
	if p.RxPort > uint32(ad936x.TxMon1And2) {
		return invalid("params.rx_port %d outside [0, %d]", p.RxPort, ad936x.TxMon1And2)
	}
	if p.TxPort > uint32(ad936x.TXB) {
		return invalid("params.tx_port %d outside [0, %d]", p.TxPort, ad936x.TXB)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging.level: %v", err)
	}
	if c.Trace.DB != "" && c.Trace.BatchSize <= 0 {
		return invalid("trace.batch_size must be positive, got %d", c.Trace.BatchSize)
	}
	return nil
}

// InitParam returns the driver init parameters for this configuration.
func (c *Config) InitParam() noos.InitParam {
	p := noos.DefaultInitParam()
	p.RxSynthesizerFrequencyHz = c.Params.RxLoHz
	p.TxSynthesizerFrequencyHz = c.Params.TxLoHz
	p.RFRxBandwidthHz = c.Params.RxBandwidthHz
	p.RFTxBandwidthHz = c.Params.TxBandwidthHz
	p.TxAttenuationMdB = c.Params.TxAttenuationMdB
	p.GCRx1Mode = uint8(gainModes[c.Params.Rx1GainMode])
	p.GCRx2Mode = uint8(gainModes[c.Params.Rx2GainMode])
	p.RxRFPortInputSelect = c.Params.RxPort
	p.TxRFPortInputSelect = c.Params.TxPort
	return p
}
