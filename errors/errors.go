package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseInit    Phase = "init"    // device construction and driver init
	PhaseAccess  Phase = "access"  // typed accessor calls
	PhaseAlloc   Phase = "alloc"   // driver heap
	PhaseInterop Phase = "interop" // platform hooks called by the driver
	PhaseDecode  Phase = "decode"  // register transaction frames
	PhaseLoad    Phase = "load"    // guest module loading
	PhaseHost    Phase = "host"    // host module registration
	PhaseConfig  Phase = "config"  // configuration files
)

// Kind categorizes the error
type Kind string

const (
	KindStatus         Kind = "status"
	KindNotInitialized Kind = "not_initialized"
	KindSingleton      Kind = "singleton"
	KindReentrant      Kind = "reentrant"
	KindHeapExhausted  Kind = "heap_exhausted"
	KindOutOfRange     Kind = "out_of_range"
	KindInvalidData    Kind = "invalid_data"
	KindInvalidInput   Kind = "invalid_input"
	KindUnbound        Kind = "unbound"
	KindMissingExport  Kind = "missing_export"
	KindInstantiation  Kind = "instantiation"
	KindGuestTrap      Kind = "guest_trap"
	KindNotFound       Kind = "not_found"
	KindIO             Kind = "io"
	KindMoved          Kind = "moved"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
	Status int32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" at ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Kind == KindStatus {
		b.WriteString(" (status ")
		b.WriteString(strconv.FormatInt(int64(e.Status), 10))
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Status sets the raw driver status code
func (b *Builder) Status(code int32) *Builder {
	b.err.Status = code
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Status creates an error carrying a nonzero driver status code
func Status(phase Phase, op string, code int32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindStatus,
		Op:     op,
		Status: code,
		Value:  code,
	}
}

// StatusCode extracts the raw driver status from err.
func StatusCode(err error) (int32, bool) {
	var e *Error
	if stderrors.As(err, &e) && e.Kind == KindStatus {
		return e.Status, true
	}
	return 0, false
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Op:     op,
		Detail: "must call Init before accessing the device",
	}
}

// Singleton creates an error for a second live device or a corrupted singleton flag
func Singleton(detail string) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindSingleton,
		Detail: detail,
	}
}

// Reentrant creates an error for a nested call into a non-reentrant resource
func Reentrant(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindReentrant,
		Detail: fmt.Sprintf("reentrant use of %s", what),
	}
}

// HeapExhausted creates a driver heap exhaustion error
func HeapExhausted(size uintptr, used, capacity int) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindHeapExhausted,
		Detail: fmt.Sprintf("allocation of %d bytes exceeds heap (%d of %d words used)", size, used, capacity),
		Value:  size,
	}
}

// OutOfRange creates an out of range input error
func OutOfRange(phase Phase, op string, value any, lo, hi any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Op:     op,
		Detail: fmt.Sprintf("value %v outside [%v, %v]", value, lo, hi),
		Value:  value,
	}
}

// Moved creates an error for a device used at a different address than
// the one it was initialized at
func Moved(op string) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindMoved,
		Op:     op,
		Detail: "device copied or moved after Init",
	}
}

// Unbound creates an error for a hook invoked without a bound peripheral
func Unbound(what string, handle uint32) *Error {
	return &Error{
		Phase:  PhaseInterop,
		Kind:   KindUnbound,
		Detail: fmt.Sprintf("%s handle %d not bound", what, handle),
		Value:  handle,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// GuestTrap creates an error for a driver call that trapped inside the guest
func GuestTrap(op string, cause error) *Error {
	return &Error{
		Phase:  PhaseInterop,
		Kind:   KindGuestTrap,
		Op:     op,
		Detail: "driver call trapped",
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate driver module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingExportsError is returned when a driver module lacks required entry points
type MissingExportsError struct {
	Module  string
	Exports []string
}

// NewMissingExportsError creates an error listing the absent exports of module
func NewMissingExportsError(module string, exports []string) *MissingExportsError {
	return &MissingExportsError{Module: module, Exports: exports}
}

func (e *MissingExportsError) Error() string {
	if len(e.Exports) == 0 {
		return "[load] missing_export: no exports specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "module %s is missing %d driver export(s):", e.Module, len(e.Exports))
	for _, name := range e.Exports {
		b.WriteString("\n  - ")
		b.WriteString(name)
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *MissingExportsError) Is(target error) bool {
	if _, ok := target.(*MissingExportsError); ok {
		return true
	}
	if t, ok := target.(*Error); ok {
		return t.Phase == PhaseLoad && t.Kind == KindMissingExport
	}
	return false
}
