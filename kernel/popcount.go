package kernel

import "encoding/binary"
import "math/bits"

// XnorPopcount counts the matching bit pairs of a and b over the first n bits,
// n being a multiple of SIMDBits. It is switched to a faster implementation
// at init time when the CPU allows it.
var XnorPopcount func(a, b []byte, n int) int = xnorPopcountBytewise

var implementation = "bytewise"

// Implementation names the XnorPopcount implementation in use.
func Implementation() string {
	return implementation
}

// Dot computes the +/-1 dot product of two padded bit vectors of n bits.
// Padding bits that are zero on both sides count as matches, the caller
// subtracts them.
func Dot(a, b []byte, n int) int {
	return 2*XnorPopcount(a, b, n) - n
}

// DotReference computes the +/-1 dot product of the first n values by
// unpacking every bit.
func DotReference(a, b []byte, n int) (sum int) {
	for i := 0; i < n; i++ {
		var x, w = -1, -1
		if Bit(a, i) {
			x = 1
		}
		if Bit(b, i) {
			w = 1
		}
		sum += x * w
	}
	return
}

func xnorPopcountBytewise(a, b []byte, n int) (sum int) {
	var blocks = n / ByteBits
	a, b = a[:blocks], b[:blocks]
	for i := range a {
		sum += bits.OnesCount8(^(a[i] ^ b[i]))
	}
	return
}

// xnorPopcountLanes processes one SIMD register worth of blocks at a time
// as four 64 bit popcount lanes.
func xnorPopcountLanes(a, b []byte, n int) (sum int) {
	var registers = n / SIMDBits
	a, b = a[:registers*SIMDBytes], b[:registers*SIMDBytes]
	for r := 0; r < registers; r++ {
		var x = a[r*SIMDBytes : (r+1)*SIMDBytes]
		var w = b[r*SIMDBytes : (r+1)*SIMDBytes]
		var l0 = ^(binary.LittleEndian.Uint64(x[0:]) ^ binary.LittleEndian.Uint64(w[0:]))
		var l1 = ^(binary.LittleEndian.Uint64(x[8:]) ^ binary.LittleEndian.Uint64(w[8:]))
		var l2 = ^(binary.LittleEndian.Uint64(x[16:]) ^ binary.LittleEndian.Uint64(w[16:]))
		var l3 = ^(binary.LittleEndian.Uint64(x[24:]) ^ binary.LittleEndian.Uint64(w[24:]))
		sum += bits.OnesCount64(l0) + bits.OnesCount64(l1) + bits.OnesCount64(l2) + bits.OnesCount64(l3)
	}
	return
}
