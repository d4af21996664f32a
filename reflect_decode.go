package xdrserde

import (
	"reflect"
	"unicode/utf8"
	"unsafe"

	"github.com/novifinancial/serde-reflection/serde-generate/runtime/golang/serde"
)

// deserializer is satisfied by both Deserializer and ReaderDeserializer: the
// serde.Deserializer methods for ordinary values, plus the lower-level
// source methods decodeFixedOpaque needs for §4.9 fields.
type deserializer interface {
	serde.Deserializer
	source
	readOpaque(max uint64) ([]byte, error)
}

// decodeValue is the generic entry point FromBytes, FromBytesPartial, and
// FromReader share: it builds a zero T, walks it by reflection filling in
// every field from d, and hands back the populated value.
func decodeValue[T any](d deserializer) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	if err := decodeInto(d, rv, noTag()); err != nil {
		return out, err
	}
	return out, nil
}

// decodeInto is the decode-side mirror of encodeTagged: it fills the
// addressable value v by issuing the same sequence of Deserializer calls
// encodeTagged issued Serializer calls for a value of v's type.
func decodeInto(d deserializer, v reflect.Value, tag fieldTag) error {
	if v.Type() == charType {
		c, err := d.DeserializeChar()
		if err != nil {
			return err
		}
		v.SetInt(int64(c))
		return nil
	}
	switch v.Kind() {
	case reflect.Bool:
		x, err := d.DeserializeBool()
		if err != nil {
			return err
		}
		v.SetBool(x)
	case reflect.Int8:
		x, err := d.DeserializeI8()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
	case reflect.Int16:
		x, err := d.DeserializeI16()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
	case reflect.Int32:
		x, err := d.DeserializeI32()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
	case reflect.Int, reflect.Int64:
		x, err := d.DeserializeI64()
		if err != nil {
			return err
		}
		v.SetInt(x)
	case reflect.Uint8:
		x, err := d.DeserializeU8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint16:
		x, err := d.DeserializeU16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint32:
		x, err := d.DeserializeU32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint, reflect.Uint64:
		x, err := d.DeserializeU64()
		if err != nil {
			return err
		}
		v.SetUint(x)
	case reflect.Float32:
		x, err := d.DeserializeF32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(x))
	case reflect.Float64:
		x, err := d.DeserializeF64()
		if err != nil {
			return err
		}
		v.SetFloat(x)
	case reflect.String:
		if tag.hasMax() {
			b, err := d.readOpaque(tag.maxLen)
			if err != nil {
				return err
			}
			if !utf8.Valid(b) {
				return ErrInvalidString
			}
			if d.borrowed() && len(b) > 0 {
				// Zero-copy view over the input buffer, as DeserializeStr does (I6).
				v.SetString(unsafe.String(unsafe.SliceData(b), len(b)))
				return nil
			}
			v.SetString(string(b))
			return nil
		}
		x, err := d.DeserializeStr()
		if err != nil {
			return err
		}
		v.SetString(x)
	case reflect.Ptr:
		return decodeOption(d, v)
	case reflect.Struct:
		return decodeStruct(d, v)
	case reflect.Array:
		return decodeArray(d, v, tag)
	case reflect.Slice:
		return decodeSlice(d, v, tag)
	case reflect.Map:
		return decodeMap(d, v)
	case reflect.Interface:
		return errUnsupported("interface field outside a struct (no UnionFactory to consult)")
	default:
		return errUnsupported(v.Type().String())
	}
	return nil
}

func decodeOption(d deserializer, v reflect.Value) error {
	present, err := d.DeserializeOptionTag()
	if err != nil {
		return err
	}
	if !present {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	ptr := reflect.New(v.Type().Elem())
	if err := decodeInto(d, ptr.Elem(), noTag()); err != nil {
		return err
	}
	v.Set(ptr)
	return nil
}

func decodeStruct(d deserializer, v reflect.Value) error {
	t := v.Type()
	if t.NumField() == 0 {
		_, err := d.DeserializeUnit()
		return err
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.Interface {
			if err := decodeUnionField(d, v, i); err != nil {
				return err
			}
			continue
		}
		if err := decodeInto(d, fv, parseFieldTag(f)); err != nil {
			return err
		}
	}
	return nil
}

// decodeUnionField implements the decode half of RFC 4506 §4.15: read the
// discriminant, ask the enclosing struct which concrete type it names, then
// decode into that type and store it back in the interface field.
func decodeUnionField(d deserializer, structVal reflect.Value, fieldIndex int) error {
	idx, err := d.DeserializeVariantIndex()
	if err != nil {
		return err
	}
	factory, ok := structVal.Addr().Interface().(UnionFactory)
	if !ok {
		return errUnsupported(structVal.Type().String() + " does not implement xdrserde.UnionFactory")
	}
	arm, err := factory.XDRNewVariant(idx)
	if err != nil {
		return errInvalidDiscriminant(int32(idx))
	}
	armVal := reflect.ValueOf(arm)
	if armVal.Kind() == reflect.Ptr {
		if err := decodeInto(d, armVal.Elem(), noTag()); err != nil {
			return err
		}
		structVal.Field(fieldIndex).Set(armVal)
		return nil
	}
	ptr := reflect.New(armVal.Type())
	ptr.Elem().Set(armVal)
	if err := decodeInto(d, ptr.Elem(), noTag()); err != nil {
		return err
	}
	structVal.Field(fieldIndex).Set(ptr.Elem())
	return nil
}

func decodeArray(d deserializer, v reflect.Value, tag fieldTag) error {
	elemType := v.Type().Elem()
	if tag.fixed {
		if elemType.Kind() != reflect.Uint8 {
			return errUnsupported("xdr:\"fixed\" on non-byte array " + v.Type().String())
		}
		b, err := decodeFixedOpaque(d, v.Len())
		if err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			v.Index(i).SetUint(uint64(b[i]))
		}
		return nil
	}
	for i := 0; i < v.Len(); i++ {
		if err := decodeInto(d, v.Index(i), noTag()); err != nil {
			return err
		}
	}
	return nil
}

func decodeSlice(d deserializer, v reflect.Value, tag fieldTag) error {
	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Uint8 {
		max := uint64(noMax)
		if tag.hasMax() {
			max = tag.maxLen
		}
		b, err := d.readOpaque(max)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(b).Convert(v.Type()))
		return nil
	}
	n, err := d.DeserializeLen()
	if err != nil {
		return err
	}
	// The schema-declared bound, when present, must reject an oversized
	// on-wire count before MakeSlice ever runs (§4.3, scenario 9):
	// preallocCap's constant cap protects against unbounded fields, but a
	// declared max must fail with its own {max, got} pair even below that
	// cap.
	if tag.hasMax() && n > tag.maxLen {
		return errLengthOverflow(uint32(tag.maxLen), uint32(n))
	}
	out := reflect.MakeSlice(v.Type(), 0, preallocCap(int(n)))
	for i := uint64(0); i < n; i++ {
		elem := reflect.New(elemType).Elem()
		if err := decodeInto(d, elem, noTag()); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
	v.Set(out)
	return nil
}

func decodeMap(d deserializer, v reflect.Value) error {
	n, err := d.DeserializeLen()
	if err != nil {
		return err
	}
	keyType := v.Type().Key()
	valType := v.Type().Elem()
	out := reflect.MakeMapWithSize(v.Type(), preallocCap(int(n)))
	for i := uint64(0); i < n; i++ {
		k := reflect.New(keyType).Elem()
		if err := decodeInto(d, k, noTag()); err != nil {
			return err
		}
		val := reflect.New(valType).Elem()
		if err := decodeInto(d, val, noTag()); err != nil {
			return err
		}
		out.SetMapIndex(k, val)
	}
	v.Set(out)
	return nil
}
