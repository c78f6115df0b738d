// Command ad936x initializes an AD9361 and prints its status, or opens
// an interactive console over its accessors.
//
// Without -spi the device runs against the register simulator; without
// -wasm it uses the built-in simulated driver.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tebeka/atexit"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ad936x"
	"github.com/wippyai/ad936x/wasmhost"
)

func main() {
	var (
		configFile  = flag.String("config", "", "YAML configuration file")
		wasmFile    = flag.String("wasm", "", "Driver wasm module (default: simulated driver)")
		spiPort     = flag.String("spi", "", "SPI port, e.g. /dev/spidev0.0 (default: register simulator)")
		resetPin    = flag.String("reset", "", "RESETB GPIO name, e.g. GPIO25")
		heapWords   = flag.Int("heap", 0, "Driver heap size in 32-bit words")
		traceDB     = flag.String("trace", "", "Record register transactions to this sqlite file")
		logFile     = flag.String("log", "", "Also log to this file, rotated")
		verbose     = flag.Bool("v", false, "Debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg, err := LoadConfig(*configFile, os.Getenv)
	if err != nil {
		fail(err)
	}
	applyFlags(cfg, flagOverrides{
		wasm:      *wasmFile,
		spi:       *spiPort,
		reset:     *resetPin,
		heapWords: *heapWords,
		trace:     *traceDB,
		logFile:   *logFile,
	})
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	if *interactive && !term.IsTerminal(int(os.Stdout.Fd())) {
		fail(fmt.Errorf("-i needs a terminal"))
	}

	log, err := newLogger(cfg.Logging, *verbose)
	if err != nil {
		fail(err)
	}
	if *interactive && cfg.Logging.File == "" {
		// the console owns the screen
		log = zap.NewNop()
	}
	atexit.Register(func() { _ = log.Sync() })
	ad936x.SetLogger(log)
	wasmhost.SetLogger(log.Named("wasmhost"))

	if err := run(cfg, log, *interactive); err != nil {
		fail(err)
	}
	atexit.Exit(0)
}

// flagOverrides are the command-line values that take precedence over
// the configuration file and environment.
type flagOverrides struct {
	wasm      string
	spi       string
	reset     string
	heapWords int
	trace     string
	logFile   string
}

func applyFlags(cfg *Config, f flagOverrides) {
	if f.wasm != "" {
		cfg.Driver.Wasm = f.wasm
	}
	if f.spi != "" {
		cfg.Device.SPI = f.spi
	}
	if f.reset != "" {
		cfg.Device.ResetPin = f.reset
	}
	if f.heapWords > 0 {
		cfg.Device.HeapWords = f.heapWords
		cfg.Driver.HeapWords = f.heapWords
	}
	if f.trace != "" {
		cfg.Trace.DB = f.trace
	}
	if f.logFile != "" {
		cfg.Logging.File = f.logFile
	}
}

func run(cfg *Config, log *zap.Logger, interactive bool) error {
	ctx := context.Background()

	s, err := openSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	s.closeAtExit()

	if interactive {
		return runInteractive(s)
	}
	return writeReport(os.Stdout, s)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	atexit.Exit(1)
}
