package xdrserde

import (
	"fmt"

	"go.uber.org/zap"
)

// Kind identifies one member of the codec's closed error taxonomy. Every
// failure the codec returns is an *Error with exactly one Kind; there is no
// stringly-typed dispatch and no side-channel panic path.
type Kind int

const (
	// KindMessage wraps a custom error surfaced by a caller-supplied
	// visitor. No code path in this package returns it: an error from a
	// UnionFactory is reported as KindInvalidDiscriminant instead.
	KindMessage Kind = iota

	// KindUnexpectedEOF means the source was exhausted before the target
	// shape was fully read.
	KindUnexpectedEOF

	// KindLengthRequired means the encoder was handed a sequence whose
	// length is not known at the point of encoding.
	KindLengthRequired

	// KindInvalidString means a variable-length opaque blob failed UTF-8
	// validation while being read as a string.
	KindInvalidString

	// KindInvalidBool means a boolean discriminant was neither 0 nor 1.
	KindInvalidBool

	// KindInvalidOption means an option discriminant was neither 0 nor 1.
	KindInvalidOption

	// KindInvalidDiscriminant means a union discriminant did not name a
	// variant the destination type knows how to construct.
	KindInvalidDiscriminant

	// KindLengthOverflow means an on-wire length exceeded a schema-declared
	// maximum before any allocation was attempted.
	KindLengthOverflow

	// KindInvalidPadding means a pad octet was non-zero.
	KindInvalidPadding

	// KindUnsupported means the Go value's shape has no XDR encoding.
	KindUnsupported

	// KindIO wraps an error from a caller-supplied io.Reader or io.Writer.
	KindIO

	// KindTrailingBytes means FromBytes was given a buffer with unconsumed
	// bytes after the target value was fully decoded. See FromBytesPartial
	// for the framing-friendly alternative that returns the tail instead
	// of failing.
	KindTrailingBytes
)

// Error is the single error type the codec returns. Payload fields are only
// meaningful for the Kind that documents them; all others are zero.
type Error struct {
	Kind Kind

	// Value carries the offending discriminant for KindInvalidBool and
	// KindInvalidOption.
	Value uint32

	// Variant carries the offending discriminant, cast to signed, for
	// KindInvalidDiscriminant.
	Variant int32

	// Max and Got carry the declared bound and the on-wire length for
	// KindLengthOverflow.
	Max, Got uint32

	// What names the unsupported Go shape for KindUnsupported.
	What string

	// Detail holds the message text for KindMessage, KindIO, and
	// KindTrailingBytes.
	Detail string

	// wrapped is the underlying error for KindIO, exposed via Unwrap.
	wrapped error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMessage:
		return e.Detail
	case KindUnexpectedEOF:
		return "xdrserde: unexpected end of input"
	case KindLengthRequired:
		return "xdrserde: sequence length must be known before encoding"
	case KindInvalidString:
		return "xdrserde: string contains invalid UTF-8"
	case KindInvalidBool:
		return fmt.Sprintf("xdrserde: invalid boolean discriminant %d (must be 0 or 1)", e.Value)
	case KindInvalidOption:
		return fmt.Sprintf("xdrserde: invalid option discriminant %d (must be 0 or 1)", e.Value)
	case KindInvalidDiscriminant:
		return fmt.Sprintf("xdrserde: invalid union discriminant %d", e.Variant)
	case KindLengthOverflow:
		return fmt.Sprintf("xdrserde: length %d exceeds declared maximum %d", e.Got, e.Max)
	case KindInvalidPadding:
		return "xdrserde: non-zero padding byte"
	case KindUnsupported:
		return fmt.Sprintf("xdrserde: unsupported value shape: %s", e.What)
	case KindIO:
		return fmt.Sprintf("xdrserde: I/O error: %s", e.Detail)
	case KindTrailingBytes:
		return fmt.Sprintf("xdrserde: %s", e.Detail)
	default:
		return "xdrserde: unknown error"
	}
}

// Unwrap exposes the underlying I/O error, if any, to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.wrapped }

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, xdrserde.ErrInvalidPadding) without comparing payload
// fields they don't care about.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for the payload-free Kinds, for use with errors.Is.
//
// KindLengthRequired and KindMessage have no corresponding sentinel or
// constructor: the reflective encoder always knows a slice's length via
// v.Len() before it needs to emit one, and no visitor forwards a custom
// error the way a host framework's derive-generated code might. The Kind
// constants stay for taxonomy completeness with spec §7's table; nothing
// in this package can currently produce them.
var (
	ErrUnexpectedEOF  = &Error{Kind: KindUnexpectedEOF}
	ErrInvalidString  = &Error{Kind: KindInvalidString}
	ErrInvalidPadding = &Error{Kind: KindInvalidPadding}
)

func errInvalidBool(v uint32) error        { return &Error{Kind: KindInvalidBool, Value: v} }
func errInvalidOption(v uint32) error      { return &Error{Kind: KindInvalidOption, Value: v} }
func errInvalidDiscriminant(v int32) error {
	log().Debug("unknown union discriminant", zap.Int32("discriminant", v))
	return &Error{Kind: KindInvalidDiscriminant, Variant: v}
}
func errLengthOverflow(max, got uint32) error {
	log().Debug("length exceeds declared maximum", zap.Uint32("max", max), zap.Uint32("got", got))
	return &Error{Kind: KindLengthOverflow, Max: max, Got: got}
}
func errUnsupported(what string) error { return &Error{Kind: KindUnsupported, What: what} }

func errIO(err error) error {
	return &Error{Kind: KindIO, Detail: err.Error(), wrapped: err}
}

func errTrailingBytes(n int) error {
	return &Error{Kind: KindTrailingBytes, Detail: fmt.Sprintf("%d trailing byte(s) after decoded value", n)}
}
