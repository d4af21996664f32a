// Package xdrserde implements XDR (eXternal Data Representation, RFC 4506)
// encoding and decoding for Go values.
//
// XDR is the wire format used by ONC RPC and NFS: every primitive is
// big-endian and every encoded item is padded to a multiple of four octets.
// The format is not self-describing, so the caller's Go type is the schema.
//
// # Quick start
//
//	type FileHandle struct {
//		Inode      uint64
//		Generation uint32
//		Flags      uint32
//	}
//
//	fh := FileHandle{Inode: 0x0102030405060708, Generation: 42}
//	buf, err := xdrserde.ToBytes(fh)
//	// buf is 16 bytes: 8 (inode) + 4 (generation) + 4 (flags)
//
//	decoded, err := xdrserde.FromBytes[FileHandle](buf)
//
// # Value model
//
// The codec drives a generic value model borrowed from
// github.com/novifinancial/serde-reflection: [Serializer] and the
// deserializer types satisfy that package's serde.Serializer and
// serde.Deserializer interfaces, the same contract the reflection-based
// serde-generate runtimes for LCS, Bincode and BCS implement. This package
// supplies the missing half for those interfaces: a reflection-driven
// walker over ordinary Go values that issues the calls in the order RFC
// 4506 prescribes, since Go has no macro-generated per-type Serialize
// implementations to do it for us.
//
// # Fixed-length opaque data
//
// RFC 4506 §4.9 fixed-length opaque data (NFS file handles, stateids,
// verifiers) is written as raw bytes plus padding, with no length prefix.
// Without the tag a Go [N]byte array is encoded under the default §4.12
// array-of-octet rule instead: each byte zero-extended to a 4-octet word.
// Opt a field into §4.9 with the `xdr:"fixed"` struct tag:
//
//	type StateID struct {
//		SequenceID uint32
//		Other      [12]byte `xdr:"fixed"`
//	}
//
// # Non-goals
//
// This package does not attempt self-description, schema discovery,
// dynamic "any" decoding, 128-bit floats, or arbitrary-precision integers,
// and it cannot encode a sequence whose length is unknown at encode time.
package xdrserde
