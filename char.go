package xdrserde

// Char marks a field as a 32-bit code point, encoded as an XDR unsigned
// integer (RFC 4506 §4.2) — XDR has no separate "char" type, just this
// widened-to-u32 code-point encoding.
// Go's rune is a plain alias for int32, so without a dedicated named type
// the reflective walker would have no way to tell "code point" apart from
// "signed integer" — reflect.Kind sees only int32 either way.
//
//	type Login struct {
//		Initial xdrserde.Char
//	}
type Char rune
