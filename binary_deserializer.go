package xdrserde

import (
	"unicode/utf8"

	"github.com/novifinancial/serde-reflection/serde-generate/runtime/golang/serde"
)

// binaryDeserializer implements the primitive-value half of serde.Deserializer
// that is identical regardless of what backs the byte stream. Deserializer
// (slice-backed) and ReaderDeserializer (stream-backed) each embed one,
// mirroring the teacher's own serde.BinaryDeserializer, which lcs and
// bincode embed the same way — only the methods that genuinely depend on
// the source shape (readOpaque, DeserializeStr, DeserializeBytes,
// GetBufferOffset) live on the outer types.
type binaryDeserializer struct {
	src source
}

func (d *binaryDeserializer) DeserializeBool() (bool, error) {
	v, err := getU32(d.src)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errInvalidBool(v)
	}
}

func (d *binaryDeserializer) DeserializeI8() (int8, error) {
	v, err := getU32(d.src)
	return int8(int32(v)), err
}

func (d *binaryDeserializer) DeserializeI16() (int16, error) {
	v, err := getU32(d.src)
	return int16(int32(v)), err
}

func (d *binaryDeserializer) DeserializeI32() (int32, error) {
	v, err := getU32(d.src)
	return int32(v), err
}

func (d *binaryDeserializer) DeserializeI64() (int64, error) {
	v, err := getU64(d.src)
	return int64(v), err
}

func (d *binaryDeserializer) DeserializeU8() (uint8, error) {
	v, err := getU32(d.src)
	return uint8(v), err
}

func (d *binaryDeserializer) DeserializeU16() (uint16, error) {
	v, err := getU32(d.src)
	return uint16(v), err
}

func (d *binaryDeserializer) DeserializeU32() (uint32, error) { return getU32(d.src) }
func (d *binaryDeserializer) DeserializeU64() (uint64, error) { return getU64(d.src) }

func (d *binaryDeserializer) DeserializeI128() (serde.Int128, error) {
	return serde.Int128{}, errUnsupported("128-bit integer")
}

func (d *binaryDeserializer) DeserializeU128() (serde.Uint128, error) {
	return serde.Uint128{}, errUnsupported("128-bit integer")
}

func (d *binaryDeserializer) DeserializeF32() (float32, error) {
	v, err := getU32(d.src)
	if err != nil {
		return 0, err
	}
	return float32frombits(v), nil
}

func (d *binaryDeserializer) DeserializeF64() (float64, error) {
	v, err := getU64(d.src)
	if err != nil {
		return 0, err
	}
	return float64frombits(v), nil
}

func (d *binaryDeserializer) DeserializeChar() (rune, error) {
	v, err := getU32(d.src)
	if err != nil {
		return 0, err
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, ErrInvalidString
	}
	return r, nil
}

func (d *binaryDeserializer) DeserializeLen() (uint64, error) {
	v, err := getU32(d.src)
	return uint64(v), err
}

func (d *binaryDeserializer) DeserializeVariantIndex() (uint32, error) { return getU32(d.src) }

func (d *binaryDeserializer) DeserializeOptionTag() (bool, error) {
	v, err := getU32(d.src)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errInvalidOption(v)
	}
}

func (d *binaryDeserializer) DeserializeUnit() (struct{}, error) { return struct{}{}, nil }

// CheckThatKeySlicesAreIncreasing mirrors bcs.Deserializer's canonical-order
// check, comparing two already-decoded map keys' encoded byte ranges. XDR
// itself has no canonical map ordering requirement (I5 only binds the
// encoder, not the decoder), so this always succeeds; it exists so both
// embedders satisfy serde.Deserializer in full.
func (d *binaryDeserializer) CheckThatKeySlicesAreIncreasing(key1, key2 serde.Slice) error {
	return nil
}

// IncreaseContainerDepth and DecreaseContainerDepth exist so both embedders
// satisfy serde.Deserializer in full; XDR's spec imposes no recursion-depth
// limit (unlike bcs), so there is no budget to track.
func (d *binaryDeserializer) IncreaseContainerDepth() error { return nil }
func (d *binaryDeserializer) DecreaseContainerDepth()        {}
