package xdrserde

import (
	"unicode/utf8"
	"unsafe"

	"github.com/novifinancial/serde-reflection/serde-generate/runtime/golang/serde"
)

// Deserializer reads XDR-encoded values from an in-memory byte slice. Because
// the whole input already lives in one contiguous buffer, strings and byte
// blobs it hands back are borrows into that buffer rather than copies (I6):
// the caller must not mutate buf while a decoded value derived from it is
// still in use.
type Deserializer struct {
	binaryDeserializer
	buf []byte
	pos int
}

var _ serde.Deserializer = (*Deserializer)(nil)
var _ source = (*Deserializer)(nil)

// NewDeserializer wraps buf for reading. It does not copy buf.
func NewDeserializer(buf []byte) *Deserializer {
	d := &Deserializer{buf: buf}
	d.binaryDeserializer.src = d
	return d
}

func (d *Deserializer) take(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.buf) {
		return nil, ErrUnexpectedEOF
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *Deserializer) borrowed() bool { return true }

// remaining reports how many bytes are left unconsumed.
func (d *Deserializer) remaining() int { return len(d.buf) - d.pos }

// readOpaque reads the shared §4.10/§4.11 layout — a length prefix, the raw
// bytes (borrowed, not copied), and the trailing pad — and returns the raw
// slice. max, unless noMax, enforces a schema-declared bound (§4.3) and is
// checked before take() so a hostile length never reaches allocation.
func (d *Deserializer) readOpaque(max uint64) ([]byte, error) {
	n, err := getU32(d)
	if err != nil {
		return nil, err
	}
	if max != noMax && uint64(n) > max {
		return nil, errLengthOverflow(uint32(max), n)
	}
	// preallocCap is irrelevant here: take() either has the bytes already
	// contiguous in buf or fails outright, so there is no incremental
	// growth to bound in the slice-backed case.
	b, err := d.take(int(n))
	if err != nil {
		return nil, err
	}
	if err := getPad(d, int(n)); err != nil {
		return nil, err
	}
	return b, nil
}

func (d *Deserializer) DeserializeBytes() ([]byte, error) { return d.readOpaque(noMax) }

func (d *Deserializer) DeserializeStr() (string, error) {
	b, err := d.readOpaque(noMax)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidString
	}
	if len(b) == 0 {
		return "", nil
	}
	// Zero-copy string view over the borrowed slice (I6, P7): no
	// allocation, no copy. Safe because Deserializer documents that buf
	// must outlive any value decoded from it.
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

func (d *Deserializer) GetBufferOffset() uint64 { return uint64(d.pos) }

// FromBytes decodes exactly one T from buf and fails with KindTrailingBytes
// if any bytes remain afterward. Use FromBytesPartial when trailing data is
// expected, e.g. framed protocols that pack a value into a larger buffer.
func FromBytes[T any](buf []byte) (T, error) {
	var zero T
	d := NewDeserializer(buf)
	v, err := decodeValue[T](d)
	if err != nil {
		return zero, err
	}
	if d.remaining() > 0 {
		return zero, errTrailingBytes(d.remaining())
	}
	return v, nil
}

// FromBytesPartial decodes one T from the front of buf and returns the
// undecoded tail alongside it, without erroring on trailing bytes.
func FromBytesPartial[T any](buf []byte) (T, []byte, error) {
	var zero T
	d := NewDeserializer(buf)
	v, err := decodeValue[T](d)
	if err != nil {
		return zero, nil, err
	}
	return v, d.buf[d.pos:], nil
}
