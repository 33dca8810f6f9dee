package schema

import "math/bits"

// EnumBits returns the minimal number of bits needed to represent every
// value of an enumeration. For unsigned enumerations this is the bit length
// of the largest value; for signed enumerations one extra bit covers the
// sign, with negative values measured in two's complement. A set holding
// only zero still needs one bit.
func EnumBits(values []int64, signed bool) int {
	need := 1
	for _, v := range values {
		var n int
		switch {
		case signed && v < 0:
			n = bits.Len64(uint64(-v-1)) + 1
		case signed:
			n = bits.Len64(uint64(v)) + 1
		default:
			n = bits.Len64(uint64(v))
		}
		if n > need {
			need = n
		}
	}
	return need
}

// EnumBytes returns the byte ceiling of EnumBits for the given values.
func EnumBytes(values []int64, signed bool) int {
	return (EnumBits(values, signed) + 7) / 8
}
