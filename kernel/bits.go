// Package kernel implements the bit packing and the XNOR-popcount dot product used by the bit networks
package kernel

// ByteBits is the number of +/-1 values stored in one block
const ByteBits = 8

// PopcountBits is the width of one popcount lane
const PopcountBits = 64

// SIMDBits is the register width every bit vector is padded to
const SIMDBits = 256

// SIMDBytes is SIMDBits expressed in blocks
const SIMDBytes = SIMDBits / ByteBits

// PaddedBits rounds a bit count up to a multiple of SIMDBits.
func PaddedBits(n int) int {
	return (n + SIMDBits - 1) / SIMDBits * SIMDBits
}

// Blocks returns the number of bytes needed to hold n bits.
func Blocks(n int) int {
	return (n + ByteBits - 1) / ByteBits
}

// PaddedBlocks returns the number of bytes of a padded vector of n values.
func PaddedBlocks(n int) int {
	return Blocks(PaddedBits(n))
}

// BlockIndex maps a bit index to the block holding it.
func BlockIndex(i int) int {
	return i / ByteBits
}

// BitInBlock maps a bit index to its position inside the block. Bits are
// stored most significant first.
func BitInBlock(i int) uint {
	return uint(ByteBits - i%ByteBits - 1)
}

// Bit reports whether the i-th value of blocks is +1.
func Bit(blocks []byte, i int) bool {
	return blocks[BlockIndex(i)]>>BitInBlock(i)&1 != 0
}

// SetBit stores the i-th value of blocks, true meaning +1.
func SetBit(blocks []byte, i int, v bool) {
	var mask = byte(1) << BitInBlock(i)
	if v {
		blocks[BlockIndex(i)] |= mask
	} else {
		blocks[BlockIndex(i)] &^= mask
	}
}

// ClearTail zeroes every bit at index n and above.
func ClearTail(blocks []byte, n int) {
	var full = BlockIndex(n)
	if full >= len(blocks) {
		return
	}
	if rem := n % ByteBits; rem != 0 {
		blocks[full] &= byte(0xff) << uint(ByteBits-rem)
		full++
	}
	for i := full; i < len(blocks); i++ {
		blocks[i] = 0
	}
}

// PackSigns writes a 1 bit for every positive value of src and a 0 bit for
// every zero or negative value. Bits of dst past len(src) are zeroed.
func PackSigns[T int8 | int32](dst []byte, src []T) {
	if Blocks(len(src)) > len(dst) {
		panic("kernel: pack destination too short")
	}
	for i := range dst {
		dst[i] = 0
	}
	for i, v := range src {
		if v > 0 {
			dst[BlockIndex(i)] |= 1 << BitInBlock(i)
		}
	}
}

// UnpackSigns expands the first len(dst) bits of src into -1/+1 values.
func UnpackSigns(dst []int8, src []byte) {
	for i := range dst {
		if Bit(src, i) {
			dst[i] = 1
		} else {
			dst[i] = -1
		}
	}
}
