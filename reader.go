package xdrserde

import (
	"io"
	"unicode/utf8"

	"github.com/novifinancial/serde-reflection/serde-generate/runtime/golang/serde"
)

// ReaderDeserializer reads XDR-encoded values from an io.Reader. It never
// borrows: every string and byte blob it returns is a fresh copy, since a
// stream has no backing buffer for a caller to keep aliasing after the read
// completes (I6).
type ReaderDeserializer struct {
	binaryDeserializer
	r      io.Reader
	offset uint64
}

var _ serde.Deserializer = (*ReaderDeserializer)(nil)
var _ source = (*ReaderDeserializer)(nil)

// NewReaderDeserializer wraps r for reading.
func NewReaderDeserializer(r io.Reader) *ReaderDeserializer {
	d := &ReaderDeserializer{r: r}
	d.binaryDeserializer.src = d
	return d
}

func (d *ReaderDeserializer) take(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrUnexpectedEOF
		}
		return nil, errIO(err)
	}
	d.offset += uint64(n)
	return b, nil
}

func (d *ReaderDeserializer) borrowed() bool { return false }

// readOpaque reads the length prefix, copies the raw bytes, and consumes
// the trailing pad, growing the destination incrementally rather than
// trusting the on-wire count up front (§4.3). max, unless noMax, rejects an
// oversized on-wire count with LengthOverflow before any copying begins.
func (d *ReaderDeserializer) readOpaque(max uint64) ([]byte, error) {
	n, err := getU32(d)
	if err != nil {
		return nil, err
	}
	if max != noMax && uint64(n) > max {
		return nil, errLengthOverflow(uint32(max), n)
	}
	out := make([]byte, 0, preallocCap(int(n)))
	const chunk = 4096
	remaining := int(n)
	for remaining > 0 {
		step := remaining
		if step > chunk {
			step = chunk
		}
		b, err := d.take(step)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
		remaining -= step
	}
	if err := getPad(d, int(n)); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *ReaderDeserializer) DeserializeBytes() ([]byte, error) { return d.readOpaque(noMax) }

func (d *ReaderDeserializer) DeserializeStr() (string, error) {
	b, err := d.readOpaque(noMax)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidString
	}
	return string(b), nil
}

func (d *ReaderDeserializer) GetBufferOffset() uint64 { return d.offset }

// FromReader decodes exactly one T from r. Unlike FromBytes it never checks
// for trailing data: a stream has no well-defined end until the caller
// decides it does.
func FromReader[T any](r io.Reader) (T, error) {
	d := NewReaderDeserializer(r)
	return decodeValue[T](d)
}
