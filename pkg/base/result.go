package base

import (
	"errors"
	"fmt"
)

// TResult is the status code every vtable entry that can fail returns.
type TResult int32

// KResultTrue is the same code as KResultOk.
const KResultTrue = KResultOk

// String returns the SDK name of the result code.
func (r TResult) String() string {
	switch r {
	case KResultOk:
		return "kResultOk"
	case KResultFalse:
		return "kResultFalse"
	case KNoInterface:
		return "kNoInterface"
	case KInvalidArgument:
		return "kInvalidArgument"
	case KNotImplemented:
		return "kNotImplemented"
	case KInternalError:
		return "kInternalError"
	case KNotInitialized:
		return "kNotInitialized"
	case KOutOfMemory:
		return "kOutOfMemory"
	default:
		return fmt.Sprintf("tresult(%d)", int32(r))
	}
}

// OK reports whether r is KResultOk.
func (r TResult) OK() bool {
	return r == KResultOk
}

// EInterface classifies the recoverable failures of the interface layer.
type EInterface int

const (
	// ErrBadCast is returned when the object reports it does not implement
	// the requested interface.
	ErrBadCast EInterface = iota + 1
	// ErrBadQuery is returned when the source capability cannot service
	// queries at all.
	ErrBadQuery
	// ErrNullTarget is returned when a query has nowhere to write its
	// result, or reported success without producing a pointer.
	ErrNullTarget
	// ErrInitFailed is returned when IPluginBase.Initialize fails.
	ErrInitFailed
	// ErrCallFailed is returned when any other entry reports a failure code.
	ErrCallFailed
)

func (e EInterface) Error() string {
	switch e {
	case ErrBadCast:
		return "bad interface cast"
	case ErrBadQuery:
		return "bad interface query"
	case ErrNullTarget:
		return "tried to write interface to null pointer"
	case ErrInitFailed:
		return "IPluginBase initialization failed"
	case ErrCallFailed:
		return "interface call failed"
	default:
		return "unknown interface error"
	}
}

// ResultError is an EInterface annotated with the operation and the code the
// object returned. errors.Is matches it against its Kind.
type ResultError struct {
	Kind EInterface
	Op   string
	Code TResult
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%s: %v (%v)", e.Op, e.Kind, e.Code)
}

func (e *ResultError) Unwrap() error {
	return e.Kind
}

func resultError(kind EInterface, op string, code TResult) error {
	return &ResultError{Kind: kind, Op: op, Code: code}
}

// Code extracts the TResult carried by err, if any.
func Code(err error) (TResult, bool) {
	var re *ResultError
	if errors.As(err, &re) {
		return re.Code, true
	}
	return 0, false
}
