package xdrserde_test

import (
	"bytes"
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xdr "github.com/dandax123/xdr-serde"
)

// Scenario 1 (spec §8.1): a bare u32 round-trips as 4 big-endian octets.
func TestScalarUint32(t *testing.T) {
	buf, err := xdr.ToBytes(uint32(7))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x07}, buf)

	got, err := xdr.FromBytes[uint32](buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), got)
}

// Scenario 2: a u64 is 8 big-endian octets.
func TestScalarUint64(t *testing.T) {
	buf, err := xdr.ToBytes(uint64(0x0102030405060708))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, buf)
}

type FileHandle struct {
	Inode      uint64
	Generation uint32
	Flags      uint32
}

// Scenario 3: a struct is fields concatenated in order, no length prefix.
func TestStructFileHandle(t *testing.T) {
	fh := FileHandle{Inode: 0x0102030405060708, Generation: 42, Flags: 0}
	buf, err := xdr.ToBytes(fh)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x00, 0x00, 0x00, 0x2A,
		0x00, 0x00, 0x00, 0x00,
	}, buf)

	got, err := xdr.FromBytes[FileHandle](buf)
	require.NoError(t, err)
	assert.Equal(t, fh, got)
}

type StateID12 struct {
	Seq   uint32
	Other [12]byte `xdr:"fixed"`
}

// Scenario 4: a §4.9 fixed-length opaque field with a length that is
// already a multiple of 4 has no trailing pad.
func TestFixedOpaqueNoPadding(t *testing.T) {
	v := StateID12{Seq: 7, Other: [12]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}}
	buf, err := xdr.ToBytes(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x07,
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
	}, buf)

	got, err := xdr.FromBytes[StateID12](buf)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

type Trailer5 struct {
	Other [5]byte `xdr:"fixed"`
	Tail  uint32
}

// Scenario 5: a §4.9 field whose length is not a multiple of 4 is padded
// with zero octets up to the next word boundary.
func TestFixedOpaquePadded(t *testing.T) {
	v := Trailer5{Other: [5]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}, Tail: 1}
	buf, err := xdr.ToBytes(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01,
	}, buf)

	got, err := xdr.FromBytes[Trailer5](buf)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

// Scenario 6: an option is a discriminant followed by the payload, or
// nothing.
func TestOptionSomeNone(t *testing.T) {
	nine := uint32(9)
	buf, err := xdr.ToBytes(&nine)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 9}, buf)

	var nilPtr *uint32
	buf, err = xdr.ToBytes(nilPtr)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf)

	got, err := xdr.FromBytes[*uint32](buf)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Scenario 7: a string is length-prefixed and padded; flipping a pad byte
// nonzero fails InvalidPadding on decode.
func TestStringPaddingAndCorruption(t *testing.T) {
	buf, err := xdr.ToBytes("hi")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 2, 'h', 'i', 0, 0}, buf)

	got, err := xdr.FromBytes[string](buf)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)

	corrupted := append([]byte(nil), buf...)
	corrupted[len(corrupted)-1] = 0x01
	_, err = xdr.FromBytes[string](corrupted)
	require.ErrorIs(t, err, xdr.ErrInvalidPadding)
}

// Scenario 8: a boolean discriminant outside {0,1} is InvalidBool.
func TestInvalidBool(t *testing.T) {
	_, err := xdr.FromBytes[bool]([]byte{0, 0, 0, 2})
	var xerr *xdr.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, xdr.KindInvalidBool, xerr.Kind)
	assert.Equal(t, uint32(2), xerr.Value)
}

type BoundedSeq struct {
	Values []uint32 `xdr:"max=4"`
}

// Scenario 9: a declared max shorter than the on-wire count fails
// LengthOverflow without allocating the oversized container.
func TestLengthOverflow(t *testing.T) {
	inner, err := xdr.ToBytes([5]uint32{1, 2, 3, 4, 5})
	require.NoError(t, err)
	wire := append([]byte{0, 0, 0, 5}, inner...)

	_, err = xdr.FromBytes[BoundedSeq](wire)
	var xerr *xdr.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, xdr.KindLengthOverflow, xerr.Kind)
	assert.Equal(t, uint32(4), xerr.Max)
	assert.Equal(t, uint32(5), xerr.Got)
}

// P2: to_bytes and to_writer agree byte for byte.
func TestEncodeParity(t *testing.T) {
	fh := FileHandle{Inode: 99, Generation: 1, Flags: 2}
	viaBytes, err := xdr.ToBytes(fh)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, xdr.ToWriter(&buf, fh))
	assert.Equal(t, viaBytes, buf.Bytes())
}

// P3: every encoded value is a multiple of 4 octets.
func TestAlignment(t *testing.T) {
	buf, err := xdr.ToBytes("odd length string")
	require.NoError(t, err)
	assert.Zero(t, len(buf)%4)
}

// P6: from_bytes_partial splits a concatenation of two encodings and
// returns the undecoded tail each time.
func TestFromBytesPartial(t *testing.T) {
	a, err := xdr.ToBytes(uint32(1))
	require.NoError(t, err)
	b, err := xdr.ToBytes(uint32(2))
	require.NoError(t, err)
	tail := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	whole := append(append(append([]byte{}, a...), b...), tail...)

	gotA, restA, err := xdr.FromBytesPartial[uint32](whole)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), gotA)
	assert.Equal(t, append(append([]byte{}, b...), tail...), restA)

	gotB, restB, err := xdr.FromBytesPartial[uint32](restA)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), gotB)
	assert.Equal(t, tail, restB)
}

// P8: from_reader over a cursor wrapping buf yields the same value as
// from_bytes(buf).
func TestFromReaderParity(t *testing.T) {
	fh := FileHandle{Inode: 5, Generation: 6, Flags: 7}
	buf, err := xdr.ToBytes(fh)
	require.NoError(t, err)

	fromBytes, err := xdr.FromBytes[FileHandle](buf)
	require.NoError(t, err)

	fromReader, err := xdr.FromReader[FileHandle](bytes.NewReader(buf))
	require.NoError(t, err)

	assert.Equal(t, fromBytes, fromReader)
}

// FromBytes rejects trailing data; FromBytesPartial does not (Open Question
// resolution, see DESIGN.md).
func TestTrailingBytesPolicy(t *testing.T) {
	buf, err := xdr.ToBytes(uint32(1))
	require.NoError(t, err)
	withTail := append(append([]byte{}, buf...), 0, 0, 0, 0)

	_, err = xdr.FromBytes[uint32](withTail)
	var xerr *xdr.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, xdr.KindTrailingBytes, xerr.Kind)

	v, tail, err := xdr.FromBytesPartial[uint32](withTail)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)
	assert.Equal(t, []byte{0, 0, 0, 0}, tail)
}

func TestVariableSequenceAndMap(t *testing.T) {
	seq := []uint32{10, 20, 30}
	buf, err := xdr.ToBytes(seq)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 0, 0, 3,
		0, 0, 0, 10,
		0, 0, 0, 20,
		0, 0, 0, 30,
	}, buf)

	got, err := xdr.FromBytes[[]uint32](buf)
	require.NoError(t, err)
	assert.Equal(t, seq, got)

	m := map[uint32]uint32{3: 30, 1: 10, 2: 20}
	buf, err = xdr.ToBytes(m)
	require.NoError(t, err)
	gotMap, err := xdr.FromBytes[map[uint32]uint32](buf)
	require.NoError(t, err)
	assert.Equal(t, m, gotMap)
}

// Encoding the same map twice must produce byte-identical output (I5):
// map iteration order is randomized, so this exercises the sort-by-encoded-
// key step.
func TestMapEncodingIsDeterministic(t *testing.T) {
	m := map[string]uint32{"zebra": 1, "apple": 2, "mango": 3, "banana": 4}
	first, err := xdr.ToBytes(m)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := xdr.ToBytes(m)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// Tagged union (RFC 4506 §4.15). Mirrors the four-arm enum
// Regular/Directory/Symlink(String)/BlockDevice{major,minor} exercised by
// the original reference implementation's own union tests.
type Regular struct{}

func (Regular) XDRVariant() uint32 { return 0 }

type Directory struct{}

func (Directory) XDRVariant() uint32 { return 1 }

type Symlink struct{ Target string }

func (Symlink) XDRVariant() uint32 { return 2 }

type BlockDevice struct{ Major, Minor uint32 }

func (BlockDevice) XDRVariant() uint32 { return 3 }

type FileType struct {
	Kind xdr.Variant
}

func (*FileType) XDRNewVariant(index uint32) (any, error) {
	switch index {
	case 0:
		return Regular{}, nil
	case 1:
		return Directory{}, nil
	case 2:
		return Symlink{}, nil
	case 3:
		return BlockDevice{}, nil
	default:
		return nil, fmt.Errorf("unknown file type variant %d", index)
	}
}

// A unit variant is just its 4-octet discriminant: no payload fields follow.
func TestUnionUnitVariant(t *testing.T) {
	v := FileType{Kind: Regular{}}
	buf, err := xdr.ToBytes(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf)

	got, err := xdr.FromBytes[FileType](buf)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

// A variant carrying a single field encodes as discriminant then payload.
func TestUnionPayloadVariant(t *testing.T) {
	v := FileType{Kind: Symlink{Target: "/etc/hosts"}}
	buf, err := xdr.ToBytes(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 2}, buf[:4])

	got, err := xdr.FromBytes[FileType](buf)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

// A struct-shaped variant encodes its discriminant then its fields in order,
// with no length prefix on the fields themselves.
func TestUnionStructVariant(t *testing.T) {
	v := FileType{Kind: BlockDevice{Major: 8, Minor: 1}}
	buf, err := xdr.ToBytes(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 3, 0, 0, 0, 8, 0, 0, 0, 1}, buf)

	got, err := xdr.FromBytes[FileType](buf)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

// An on-wire discriminant the UnionFactory doesn't recognize fails
// InvalidDiscriminant, carrying the offending value.
func TestUnionUnknownDiscriminant(t *testing.T) {
	wire := []byte{0, 0, 0, 99}
	_, err := xdr.FromBytes[FileType](wire)
	var xerr *xdr.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, xdr.KindInvalidDiscriminant, xerr.Kind)
	assert.Equal(t, int32(99), xerr.Variant)
}

// P7 (zero-copy): a string decoded from a slice-backed Deserializer points
// into the exact input buffer rather than an independent copy.
func TestZeroCopyStringAliasesInput(t *testing.T) {
	buf, err := xdr.ToBytes("hello")
	require.NoError(t, err)

	got, err := xdr.FromBytes[string](buf)
	require.NoError(t, err)
	require.Equal(t, "hello", got)

	strAddr := uintptr(unsafe.Pointer(unsafe.StringData(got)))
	bufStart := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	bufEnd := bufStart + uintptr(len(buf))
	assert.GreaterOrEqual(t, strAddr, bufStart)
	assert.Less(t, strAddr, bufEnd)
}

// A source exhausted before the schema is satisfied fails UnexpectedEof,
// both from a slice and from a streaming reader.
func TestUnexpectedEOF(t *testing.T) {
	tooShort := []byte{0, 0, 0}

	_, err := xdr.FromBytes[uint32](tooShort)
	require.ErrorIs(t, err, xdr.ErrUnexpectedEOF)

	_, err = xdr.FromReader[uint32](bytes.NewReader(tooShort))
	require.ErrorIs(t, err, xdr.ErrUnexpectedEOF)
}

// An option discriminant outside {0,1} is InvalidOption.
func TestInvalidOption(t *testing.T) {
	_, err := xdr.FromBytes[*uint32]([]byte{0, 0, 0, 2})
	var xerr *xdr.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, xdr.KindInvalidOption, xerr.Kind)
	assert.Equal(t, uint32(2), xerr.Value)
}
