package xdrserde

import (
	"reflect"
	"strconv"
	"strings"
)

// noMax marks a fieldTag with no declared length bound.
const noMax = ^uint64(0)

// fieldTag is the parsed form of a struct field's `xdr:"..."` tag.
type fieldTag struct {
	// fixed opts an [N]byte field into RFC 4506 §4.9 fixed-length opaque
	// encoding instead of the default fixed-array-of-unsigned-int rule.
	fixed bool

	// maxLen is the schema-declared upper bound for a string, byte-blob,
	// or sequence field (RFC 4506 §4.10/§4.11's `<m>`), or noMax if the
	// field carries none. A wire count exceeding it fails LengthOverflow
	// before any decode allocation is attempted (§4.3).
	maxLen uint64
}

func (t fieldTag) hasMax() bool { return t.maxLen != noMax }

// noTag is the tag carried by any value that isn't itself a directly
// annotated struct field: slice/map elements, option payloads, union arms.
// Its zero value must not be fieldTag{} — an unset maxLen has to mean "no
// bound", not "bound to zero".
func noTag() fieldTag { return fieldTag{maxLen: noMax} }

func parseFieldTag(f reflect.StructField) fieldTag {
	t := fieldTag{maxLen: noMax}
	raw, ok := f.Tag.Lookup("xdr")
	if !ok {
		return t
	}
	for _, part := range splitComma(raw) {
		switch {
		case part == "fixed":
			t.fixed = true
		case strings.HasPrefix(part, "max="):
			if n, err := strconv.ParseUint(part[len("max="):], 10, 64); err == nil {
				t.maxLen = n
			}
		}
	}
	return t
}

func splitComma(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
