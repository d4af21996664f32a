package xdrserde

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/novifinancial/serde-reflection/serde-generate/runtime/golang/serde"
)

// Serializer writes values in XDR wire format to an underlying io.Writer.
// It implements serde.Serializer, the generic value-model interface the
// serde-reflection runtimes (LCS, Bincode, BCS) also implement — Serializer
// is XDR's member of that family. Unlike those formats, callers never drive
// a Serializer directly with generated per-type code; instead the
// reflection-based walker in reflect_encode.go issues the calls, since Go
// has no macro layer to generate them.
type Serializer struct {
	w sink
}

var _ serde.Serializer = (*Serializer)(nil)

// NewSerializer returns a Serializer that writes to w.
func NewSerializer(w io.Writer) *Serializer {
	return &Serializer{w: sink{w: w}}
}

// ToBytes encodes v and returns a fresh owned byte buffer.
func ToBytes(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := ToWriter(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToWriter encodes v to w. It produces byte-for-byte the same output as
// ToBytes (I5): both route through the same Serializer and the same
// reflective walker.
func ToWriter(w io.Writer, v any) error {
	s := NewSerializer(w)
	return encodeValue(s, reflectValueOf(v))
}

func (s *Serializer) SerializeBool(v bool) error {
	if v {
		return s.w.putU32(1)
	}
	return s.w.putU32(0)
}

func (s *Serializer) SerializeI8(v int8) error   { return s.w.putU32(uint32(int32(v))) }
func (s *Serializer) SerializeI16(v int16) error { return s.w.putU32(uint32(int32(v))) }
func (s *Serializer) SerializeI32(v int32) error { return s.w.putU32(uint32(v)) }
func (s *Serializer) SerializeI64(v int64) error { return s.w.putU64(uint64(v)) }

func (s *Serializer) SerializeU8(v uint8) error   { return s.w.putU32(uint32(v)) }
func (s *Serializer) SerializeU16(v uint16) error { return s.w.putU32(uint32(v)) }
func (s *Serializer) SerializeU32(v uint32) error { return s.w.putU32(v) }
func (s *Serializer) SerializeU64(v uint64) error { return s.w.putU64(v) }

// SerializeI128 and SerializeU128 have no XDR representation (Non-goals:
// arbitrary-precision / 128-bit values).
func (s *Serializer) SerializeI128(serde.Int128) error { return errUnsupported("128-bit integer") }
func (s *Serializer) SerializeU128(serde.Uint128) error {
	return errUnsupported("128-bit integer")
}

func (s *Serializer) SerializeF32(v float32) error {
	return s.w.putU32(float32bits(v))
}

func (s *Serializer) SerializeF64(v float64) error {
	return s.w.putU64(float64bits(v))
}

// SerializeChar writes a Unicode code point as an XDR unsigned integer.
func (s *Serializer) SerializeChar(v rune) error {
	if !utf8.ValidRune(v) {
		return errUnsupported("char (invalid code point)")
	}
	return s.w.putU32(uint32(v))
}

// SerializeStr writes a string as length-prefixed, padded UTF-8 bytes
// (RFC 4506 §4.11).
func (s *Serializer) SerializeStr(v string) error {
	return s.w.putOpaque([]byte(v))
}

// SerializeBytes writes a variable-length opaque blob (RFC 4506 §4.10).
func (s *Serializer) SerializeBytes(v []byte) error {
	return s.w.putOpaque(v)
}

// SerializeUnit writes nothing: XDR void is zero octets.
func (s *Serializer) SerializeUnit(struct{}) error { return nil }

// SerializeLen writes the 4-octet element/pair count that precedes every
// variable-length sequence or map (I3). Strings and opaque blobs get their
// length prefix from sink.putOpaque instead.
func (s *Serializer) SerializeLen(v uint64) error {
	if v > uint64(^uint32(0)) {
		return errLengthOverflow(^uint32(0), ^uint32(0))
	}
	return s.w.putU32(uint32(v))
}

// SerializeVariantIndex writes a union/enum discriminant. Every XDR
// discriminant is a full 4-octet word regardless of how many variants
// exist (I4).
func (s *Serializer) SerializeVariantIndex(v uint32) error { return s.w.putU32(v) }

// SerializeOptionTag writes the XDR optional-data discriminant: 0 for
// absent, 1 for present (RFC 4506 §4.19).
func (s *Serializer) SerializeOptionTag(v bool) error { return s.SerializeBool(v) }

func (s *Serializer) GetBufferOffset() uint64 { return s.w.offset }

// SortMapEntries is a no-op: reflect_encode.go sorts map entries by their
// encoded key bytes before any bytes reach the sink, so there is nothing
// left to reorder once encoding has started. Compare Bincode's identical
// no-op, which instead skips sorting altogether because its format has no
// canonical-ordering requirement.
func (s *Serializer) SortMapEntries(offsets []uint64) {}

// GetBytes is only meaningful when the underlying writer is a
// *bytes.Buffer; ToBytes uses it directly instead of routing through here.
func (s *Serializer) GetBytes() []byte {
	if b, ok := s.w.w.(*bytes.Buffer); ok {
		return b.Bytes()
	}
	return nil
}

// IncreaseContainerDepth and DecreaseContainerDepth exist to satisfy
// serde.Serializer in full; XDR's spec imposes no recursion-depth limit
// (unlike bcs), so there is no budget to track.
func (s *Serializer) IncreaseContainerDepth() error { return nil }
func (s *Serializer) DecreaseContainerDepth()        {}
