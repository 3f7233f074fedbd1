package errcode

import "errors"

// Code is a stable, operator-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Configuration (startup-fatal; the shell never starts)
	EmptyAlias       Code = "empty_alias"
	DuplicateAlias   Code = "duplicate_alias"
	DuplicatePin     Code = "duplicate_pin"
	PinOutOfRange    Code = "pin_out_of_range"
	DuplicateCommand Code = "duplicate_command"
	PinInUse         Code = "pin_in_use"
	ClaimFailed      Code = "claim_failed"
	UnknownBus       Code = "unknown_bus"

	// Resolution (runtime, recoverable; reported and the loop continues)
	UnknownAlias   Code = "unknown_alias"
	UnknownPin     Code = "unknown_pin"
	PinUnassigned  Code = "pin_unassigned"
	UnknownCommand Code = "unknown_command"

	// Parameters (handler-local)
	MissingParam Code = "missing_param"
	BadParam     Code = "bad_param"

	Error Code = "error" // generic fallback
)

// E carries a code plus context and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// New builds an *E with a message.
func New(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

// Wrap keeps a cause alongside the code.
func Wrap(c Code, op string, err error) *E { return &E{C: c, Op: op, Err: err} }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var e *E
	if errors.As(err, &e) {
		return e.C
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return Error
}

// IsConfig reports whether the code belongs to the startup-fatal class.
func IsConfig(c Code) bool {
	switch c {
	case EmptyAlias, DuplicateAlias, DuplicatePin, PinOutOfRange,
		DuplicateCommand, PinInUse, ClaimFailed, UnknownBus:
		return true
	}
	return false
}
