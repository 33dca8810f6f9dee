// Package bin provides fixed-width integer packing for the binary codec.
//
// Unlike encoding/binary, widths are arbitrary between 1 and 8 bytes, since
// wire schemas routinely declare 3, 5, or 7 byte fields.
package bin

import "fmt"

// Order selects the byte order for multi-byte integers.
type Order int

const (
	Big Order = iota
	Little
)

func (o Order) String() string {
	if o == Little {
		return "little"
	}
	return "big"
}

// Uint interprets b as an unsigned integer. len(b) must not exceed 8.
func Uint(b []byte, o Order) uint64 {
	var v uint64
	if o == Big {
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		return v
	}
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// Int interprets b as a two's-complement signed integer of len(b)*8 bits.
func Int(b []byte, o Order) int64 {
	return SignExtend(Uint(b, o), len(b)*8)
}

// PutUint writes the low len(b)*8 bits of v into b.
func PutUint(b []byte, v uint64, o Order) {
	if o == Big {
		for i := len(b) - 1; i >= 0; i-- {
			b[i] = byte(v)
			v >>= 8
		}
		return
	}
	for i := range b {
		b[i] = byte(v)
		v >>= 8
	}
}

// AppendUint appends size bytes holding the low size*8 bits of v.
func AppendUint(dst []byte, v uint64, size int, o Order) []byte {
	buf := make([]byte, size)
	PutUint(buf, v, o)
	return append(dst, buf...)
}

// SignExtend widens the low bits of v into a signed 64-bit integer.
func SignExtend(v uint64, bits int) int64 {
	if bits <= 0 || bits >= 64 {
		return int64(v)
	}
	if v&(1<<(bits-1)) != 0 {
		v |= ^uint64(0) << bits
	}
	return int64(v)
}

// Mask returns a mask covering the low bits.
func Mask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<bits - 1
}

// FitsUint reports whether v is representable in size bytes unsigned.
func FitsUint(v uint64, size int) bool {
	return size >= 8 || v>>(8*size) == 0
}

// FitsInt reports whether v is representable in size bytes two's complement.
func FitsInt(v int64, size int) bool {
	if size >= 8 {
		return true
	}
	bits := 8 * size
	return v >= -(1<<(bits-1)) && v < 1<<(bits-1)
}

// Fill returns n bytes of the given fill value.
func Fill(n int, fill byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return b
}

// Dump renders bytes as an annotated uppercase hex string, the form used
// for opaque and reserved payloads, e.g. "5A (len=1)".
func Dump(b []byte) string {
	return fmt.Sprintf("%X (len=%d)", b, len(b))
}
