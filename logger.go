package ad936x

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/ad936x/internal/interop"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package logger. The driver bridge logs
// through a child named "interop", including console output from the
// driver itself. This must be called before any device is created.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerOnce.Do(func() {})
	logger = l.Named("ad936x")
	interop.SetLogger(l.Named("interop"))
}
