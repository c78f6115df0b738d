package errors

// Violation is the panic payload for broken invariants: programmer errors
// that must stop the current operation instead of being returned.
type Violation struct {
	Err *Error
}

func (v *Violation) Error() string {
	return "invariant violation: " + v.Err.Error()
}

// Unwrap returns the underlying structured error
func (v *Violation) Unwrap() error {
	return v.Err
}

// Violate panics with a Violation wrapping err.
func Violate(err *Error) {
	panic(&Violation{Err: err})
}

// AsViolation reports whether a recovered panic value is a Violation.
func AsViolation(r any) (*Violation, bool) {
	v, ok := r.(*Violation)
	return v, ok
}
