package xdrserde

// encodeFixedOpaque and decodeFixedOpaque implement RFC 4506 §4.9: raw
// bytes plus alignment padding, with no length prefix, because the length
// is fixed by the field's array type rather than carried on the wire. Here
// the reflective walker bypasses the Serializer/Deserializer interface
// methods entirely — there is no serde method for
// "write N raw bytes with no length prefix", since none of LCS, Bincode, or
// BCS have an equivalent construct.
func encodeFixedOpaque(s *Serializer, b []byte) error {
	if err := s.w.putBytes(b); err != nil {
		return err
	}
	return s.w.putPad(len(b))
}

func decodeFixedOpaque(src source, n int) ([]byte, error) {
	b, err := src.take(n)
	if err != nil {
		return nil, err
	}
	if err := getPad(src, n); err != nil {
		return nil, err
	}
	return b, nil
}
