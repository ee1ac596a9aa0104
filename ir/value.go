package ir

import "math/big"

// Value is the wire-format representation of a field element: a
// little-endian byte string, fixed-width at field_bytelen * field_degree
// once a Header has been ingested.
type Value []byte

// BigInt parses v as a non-negative little-endian integer.
func (v Value) BigInt() *big.Int {
	return new(big.Int).SetBytes(reverse(v))
}

// ValueFromBigInt encodes n as a little-endian byte string of exactly
// width bytes. It panics if n does not fit in width bytes; callers that
// accept untrusted widths should check n.BitLen() first.
func ValueFromBigInt(n *big.Int, width int) Value {
	be := n.Bytes()
	if len(be) > width {
		panic("ir: value does not fit in requested width")
	}
	out := make(Value, width)
	copy(out, reverse(be))
	return out
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// Field describes the prime field a Relation is evaluated over, parsed
// once from a Header.
type Field struct {
	// Characteristic is the field's prime modulus.
	Characteristic *big.Int
	// Degree is the extension degree; only degree 1 is supported.
	Degree int
	// Bytelen is the byte width of the modulus' little-endian encoding,
	// i.e. the width every Value must be encoded at in this field.
	Bytelen int
	// Boolean indicates the relation's gate_mask selects boolean
	// semantics (BOOL bit set).
	Boolean bool
}

// NewField parses a Header's characteristic and degree into a Field.
func NewField(characteristic []byte, degree int, boolean bool) Field {
	return Field{
		Characteristic: new(big.Int).SetBytes(reverse(characteristic)),
		Degree:         degree,
		Bytelen:        len(characteristic),
		Boolean:        boolean,
	}
}
