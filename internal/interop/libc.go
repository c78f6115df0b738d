package interop

import (
	"strings"
	"unsafe"

	"go.uber.org/zap"
)

var (
	errno   int32
	console []byte
)

// DoDiv divides *n by base in place and returns the remainder.
func DoDiv(n *uint64, base uint64) uint64 {
	rem := *n % base
	*n /= base
	return rem
}

// Errno returns the driver's errno cell.
func Errno() *int32 {
	return &errno
}

// Putchar buffers console output from the driver and logs it a line at
// a time.
func Putchar(c int32) {
	if c == '\n' {
		flushConsole()
		return
	}
	console = append(console, byte(c))
}

// Puts logs one line of driver console output.
func Puts(s string) {
	flushConsole()
	emit(s)
}

func flushConsole() {
	if len(console) == 0 {
		return
	}
	emit(string(console))
	console = console[:0]
}

func emit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	Logger().Info(line, zap.String("source", "driver"))
}

// Strlen returns the length of the NUL-terminated string at s.
func Strlen(s *byte) uintptr {
	var n uintptr
	for *(*byte)(unsafe.Add(unsafe.Pointer(s), n)) != 0 {
		n++
	}
	return n
}
