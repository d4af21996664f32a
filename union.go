package xdrserde

// Variant is implemented by the concrete arm types of a discriminated union
// (RFC 4506 §4.15). A struct field typed as an interface is encoded as a
// union: the reflective walker calls XDRVariant on the value it holds to
// learn which discriminant to write before encoding the value itself.
//
//	type Regular struct{}
//	func (Regular) XDRVariant() uint32 { return 0 }
//
//	type Symlink struct{ Target string }
//	func (Symlink) XDRVariant() uint32 { return 2 }
type Variant interface {
	XDRVariant() uint32
}

// UnionFactory is implemented by a struct that has an interface-typed field
// holding a Variant. On decode, the walker calls XDRNewVariant on the
// enclosing struct with the discriminant read from the wire; the returned
// value is decoded into and then stored back in the interface field.
//
// There is deliberately no package-level variant registry: a global
// index-to-type table would be mutable shared state that every decode would
// need to synchronize against, and it would let one caller's registrations
// leak into another's decode. Requiring the enclosing struct itself to
// name its variants keeps that mapping local to the value being decoded.
type UnionFactory interface {
	XDRNewVariant(index uint32) (any, error)
}
