package xdrserde

import (
	"encoding/binary"
	"io"

	"go.uber.org/zap"
)

// wordSize is the XDR alignment unit: every encoded item occupies a
// multiple of four octets (RFC 4506 §3).
const wordSize = 4

// zeroPad is large enough to satisfy any single pad request (max 3 bytes).
var zeroPad [wordSize - 1]byte

// padLen returns the number of zero octets needed to round n up to the next
// multiple of wordSize.
func padLen(n int) int {
	return (wordSize - n%wordSize) % wordSize
}

// sink is the alignment-aware byte destination shared by every Serializer.
// It tracks the running offset so GetBufferOffset can report it without the
// underlying io.Writer supporting Seek.
type sink struct {
	w      io.Writer
	offset uint64
}

func (s *sink) putBytes(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := s.w.Write(p)
	s.offset += uint64(n)
	if err != nil {
		return errIO(err)
	}
	return nil
}

// putPad emits the 0-3 zero octets that align n bytes just written to a
// word boundary (I2).
func (s *sink) putPad(n int) error {
	if p := padLen(n); p > 0 {
		return s.putBytes(zeroPad[:p])
	}
	return nil
}

func (s *sink) putU32(v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return s.putBytes(b[:])
}

func (s *sink) putU64(v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return s.putBytes(b[:])
}

// putOpaque writes an RFC 4506 §4.10/§4.11 variable-length item: a 4-octet
// length prefix, the raw bytes, then padding.
func (s *sink) putOpaque(p []byte) error {
	if uint64(len(p)) > uint64(^uint32(0)) {
		return errLengthOverflow(^uint32(0), uint32(len(p)))
	}
	if err := s.putU32(uint32(len(p))); err != nil {
		return err
	}
	if err := s.putBytes(p); err != nil {
		return err
	}
	return s.putPad(len(p))
}

// source is the read-side counterpart of sink. Two implementations back it:
// a slice-backed reader that can hand out zero-copy borrows, and a
// stream-backed reader that always copies (see reader.go).
type source interface {
	// take returns exactly n bytes, or ErrUnexpectedEOF when the input runs
	// out (a stream-backed source also returns KindIO for other read errors).
	take(n int) ([]byte, error)
	// borrowed reports whether take's return value aliases caller memory.
	borrowed() bool
}

func getU32(s source) (uint32, error) {
	b, err := s.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func getU64(s source) (uint64, error) {
	b, err := s.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// getPad consumes the pad octets following an n-byte item and fails
// InvalidPadding if any of them is non-zero (I2).
func getPad(s source, n int) error {
	p := padLen(n)
	if p == 0 {
		return nil
	}
	b, err := s.take(p)
	if err != nil {
		return err
	}
	for _, c := range b {
		if c != 0 {
			log().Debug("non-zero padding byte", zap.Binary("pad", b))
			return ErrInvalidPadding
		}
	}
	return nil
}

// safePrealloc caps the initial capacity reflect_decode.go reserves for a
// sequence or map, and ReaderDeserializer.readOpaque for a string or opaque
// blob, before a single element has been read. A hostile 32-bit count can claim gigabytes; growing the backing
// array by appending as elements are actually consumed bounds allocation to
// what was genuinely present on the wire (§4.3 "bound first, then
// allocate").
const safePrealloc = 4096

func preallocCap(count int) int {
	if count > safePrealloc {
		return safePrealloc
	}
	if count < 0 {
		return 0
	}
	return count
}
