package xdrserde

import (
	"bytes"
	"reflect"
	"sort"
)

var charType = reflect.TypeOf(Char(0))

// reflectValueOf is the single conversion point from a caller's `any` into
// the reflect.Value the walker operates on.
func reflectValueOf(v any) reflect.Value {
	return reflect.ValueOf(v)
}

// encodeValue drives a Serializer over an arbitrary Go value, playing the
// role that macro-generated per-type Serialize implementations play in the
// serde-reflection runtimes this package's Serializer interface comes from.
// It is the encode-side equivalent of what a schema compiler would emit
// from a description of v's shape, computed instead by walking v's
// reflect.Type at call time.
func encodeValue(s *Serializer, v reflect.Value) error {
	return encodeTagged(s, v, noTag())
}

func encodeTagged(s *Serializer, v reflect.Value, tag fieldTag) error {
	if !v.IsValid() {
		return errUnsupported("invalid value")
	}
	if v.Type() == charType {
		return s.SerializeChar(rune(v.Int()))
	}
	switch v.Kind() {
	case reflect.Bool:
		return s.SerializeBool(v.Bool())
	case reflect.Int8:
		return s.SerializeI8(int8(v.Int()))
	case reflect.Int16:
		return s.SerializeI16(int16(v.Int()))
	case reflect.Int32:
		return s.SerializeI32(int32(v.Int()))
	case reflect.Int, reflect.Int64:
		return s.SerializeI64(v.Int())
	case reflect.Uint8:
		return s.SerializeU8(uint8(v.Uint()))
	case reflect.Uint16:
		return s.SerializeU16(uint16(v.Uint()))
	case reflect.Uint32:
		return s.SerializeU32(uint32(v.Uint()))
	case reflect.Uint, reflect.Uint64:
		return s.SerializeU64(v.Uint())
	case reflect.Float32:
		return s.SerializeF32(float32(v.Float()))
	case reflect.Float64:
		return s.SerializeF64(v.Float())
	case reflect.String:
		return s.SerializeStr(v.String())
	case reflect.Ptr:
		return encodeOption(s, v)
	case reflect.Interface:
		return encodeUnion(s, v)
	case reflect.Struct:
		return encodeStruct(s, v)
	case reflect.Array:
		return encodeArray(s, v, tag)
	case reflect.Slice:
		return encodeSlice(s, v)
	case reflect.Map:
		return encodeMap(s, v)
	default:
		return errUnsupported(v.Type().String())
	}
}

// encodeOption implements RFC 4506 §4.19: a nil pointer is a bool-false
// discriminant and nothing else; a non-nil pointer is bool-true followed by
// the pointee.
func encodeOption(s *Serializer, v reflect.Value) error {
	if v.IsNil() {
		return s.SerializeOptionTag(false)
	}
	if err := s.SerializeOptionTag(true); err != nil {
		return err
	}
	return encodeValue(s, v.Elem())
}

// encodeUnion implements RFC 4506 §4.15: the concrete value behind an
// interface field must implement Variant so the walker knows which
// discriminant precedes it.
func encodeUnion(s *Serializer, v reflect.Value) error {
	if v.IsNil() {
		return errUnsupported("nil interface (no discriminant to encode)")
	}
	variant, ok := v.Interface().(Variant)
	if !ok {
		return errUnsupported(v.Elem().Type().String() + " does not implement xdrserde.Variant")
	}
	if err := s.SerializeVariantIndex(variant.XDRVariant()); err != nil {
		return err
	}
	return encodeValue(s, v.Elem())
}

func encodeStruct(s *Serializer, v reflect.Value) error {
	t := v.Type()
	if t.NumField() == 0 {
		return s.SerializeUnit(struct{}{})
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}
		if err := encodeTagged(s, v.Field(i), parseFieldTag(f)); err != nil {
			return err
		}
	}
	return nil
}

// encodeArray implements RFC 4506 §4.12 fixed-length arrays: the element
// count is part of the type, so nothing precedes the elements, except when
// the field opts into §4.9 fixed-length opaque via the `xdr:"fixed"` tag.
func encodeArray(s *Serializer, v reflect.Value, tag fieldTag) error {
	if tag.fixed {
		if v.Type().Elem().Kind() != reflect.Uint8 {
			return errUnsupported("xdr:\"fixed\" on non-byte array " + v.Type().String())
		}
		return encodeFixedOpaque(s, arrayToBytes(v))
	}
	for i := 0; i < v.Len(); i++ {
		if err := encodeValue(s, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func arrayToBytes(v reflect.Value) []byte {
	b := make([]byte, v.Len())
	for i := range b {
		b[i] = byte(v.Index(i).Uint())
	}
	return b
}

// encodeSlice implements RFC 4506 §4.10 (variable-length opaque, for
// []byte) and §4.13 (variable-length array of T, for everything else): a
// 4-octet count precedes the elements.
func encodeSlice(s *Serializer, v reflect.Value) error {
	if v.Type().Elem().Kind() == reflect.Uint8 {
		return s.SerializeBytes(v.Bytes())
	}
	n := v.Len()
	if err := s.SerializeLen(uint64(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := encodeValue(s, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

type mapPair struct {
	keyBytes []byte
	val      reflect.Value
}

// encodeMap satisfies I5 (deterministic map encoding): Go's map iteration
// order is randomized, so each key is encoded into a scratch buffer first
// and the resulting pairs are written back in ascending order of their
// encoded key bytes, mirroring bcs.Deserializer's own canonical-order
// comparison on the read side.
func encodeMap(s *Serializer, v reflect.Value) error {
	keys := v.MapKeys()
	if err := s.SerializeLen(uint64(len(keys))); err != nil {
		return err
	}
	pairs := make([]mapPair, 0, len(keys))
	for _, k := range keys {
		var buf bytes.Buffer
		if err := encodeValue(NewSerializer(&buf), k); err != nil {
			return err
		}
		pairs = append(pairs, mapPair{keyBytes: buf.Bytes(), val: v.MapIndex(k)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].keyBytes, pairs[j].keyBytes) < 0
	})
	for _, p := range pairs {
		if err := s.w.putBytes(p.keyBytes); err != nil {
			return err
		}
		if err := encodeValue(s, p.val); err != nil {
			return err
		}
	}
	return nil
}
