package kernel

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSigns(r *rand.Rand, n int) []int8 {
	var out = make([]int8, n)
	for i := range out {
		if r.IntN(2) == 1 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

func signDot(a, b []int8) (sum int) {
	for i := range a {
		sum += int(a[i]) * int(b[i])
	}
	return
}

func TestPadding(t *testing.T) {
	var cases = []struct{ n, bits, blocks int }{
		{1, 256, 32},
		{2, 256, 32},
		{255, 256, 32},
		{256, 256, 32},
		{257, 512, 64},
		{1000, 1024, 128},
	}
	for _, c := range cases {
		assert.Equal(t, c.bits, PaddedBits(c.n), "padded bits of %d", c.n)
		assert.Equal(t, c.blocks, PaddedBlocks(c.n), "padded blocks of %d", c.n)
		assert.Zero(t, PaddedBits(c.n)%SIMDBits)
		assert.GreaterOrEqual(t, PaddedBits(c.n), c.n)
	}
	assert.Equal(t, 1, Blocks(1))
	assert.Equal(t, 1, Blocks(8))
	assert.Equal(t, 2, Blocks(9))
}

// bit order is most significant first
func TestBitOrder(t *testing.T) {
	var blocks = make([]byte, 2)
	SetBit(blocks, 0, true)
	SetBit(blocks, 9, true)
	assert.Equal(t, []byte{0x80, 0x40}, blocks)
	assert.True(t, Bit(blocks, 0))
	assert.False(t, Bit(blocks, 1))
	assert.True(t, Bit(blocks, 9))
	SetBit(blocks, 0, false)
	assert.Equal(t, []byte{0x00, 0x40}, blocks)
}

func TestPackSigns(t *testing.T) {
	var dst = []byte{0xff, 0xff, 0xff, 0xff}
	PackSigns(dst, []int8{1, -1, 0, 5, -7, 1, 1, 1, 1})
	assert.Equal(t, []byte{0x97, 0x80, 0x00, 0x00}, dst, "zero must pack as a negative bit")

	var sums = []int32{3, 0, -1, 1}
	PackSigns(dst, sums)
	assert.Equal(t, []byte{0x90, 0, 0, 0}, dst)

	assert.Panics(t, func() { PackSigns(make([]byte, 1), make([]int8, 9)) })
}

func TestUnpackSigns(t *testing.T) {
	var r = rand.New(rand.NewPCG(1, 2))
	var signs = randomSigns(r, 77)
	var packed = make([]byte, PaddedBlocks(len(signs)))
	PackSigns(packed, signs)
	var back = make([]int8, len(signs))
	UnpackSigns(back, packed)
	assert.Equal(t, signs, back)
}

func TestClearTail(t *testing.T) {
	var blocks = []byte{0xff, 0xff, 0xff}
	ClearTail(blocks, 10)
	assert.Equal(t, []byte{0xff, 0xc0, 0x00}, blocks)

	blocks = []byte{0xff, 0xff}
	ClearTail(blocks, 16)
	assert.Equal(t, []byte{0xff, 0xff}, blocks)

	blocks = []byte{0xff, 0xff}
	ClearTail(blocks, 0)
	assert.Equal(t, []byte{0x00, 0x00}, blocks)
}

// every implementation agrees with the scalar reference and the int8 dot product
func TestXnorPopcountImplementations(t *testing.T) {
	var impls = map[string]func(a, b []byte, n int) int{
		"bytewise": xnorPopcountBytewise,
		"lanes":    xnorPopcountLanes,
		"selected": XnorPopcount,
	}
	var r = rand.New(rand.NewPCG(42, 7))
	for _, n := range []int{256, 512, 768, 2048} {
		for iter := 0; iter < 50; iter++ {
			var sa, sb = randomSigns(r, n), randomSigns(r, n)
			var a, b = make([]byte, Blocks(n)), make([]byte, Blocks(n))
			PackSigns(a, sa)
			PackSigns(b, sb)
			var want = signDot(sa, sb)
			require.Equal(t, want, DotReference(a, b, n))
			for name, impl := range impls {
				assert.Equal(t, want, 2*impl(a, b, n)-n, "%s n=%d", name, n)
			}
			assert.Equal(t, want, Dot(a, b, n))
		}
	}
}

// a padded dot product minus the padding equals the unpadded one
func TestPaddingNeutrality(t *testing.T) {
	var r = rand.New(rand.NewPCG(3, 4))
	for _, n := range []int{1, 2, 7, 31, 100, 255, 256, 300} {
		var sa, sb = randomSigns(r, n), randomSigns(r, n)
		var padded = PaddedBits(n)
		var a, b = make([]byte, PaddedBlocks(n)), make([]byte, PaddedBlocks(n))
		PackSigns(a, sa)
		PackSigns(b, sb)
		assert.Equal(t, signDot(sa, sb), Dot(a, b, padded)-(padded-n), "n=%d", n)
		assert.Equal(t, signDot(sa, sb), DotReference(a, b, n), "n=%d", n)
	}
}

func TestImplementation(t *testing.T) {
	assert.Contains(t, []string{"bytewise", "popcnt64x4"}, Implementation())
}

func BenchmarkXnorPopcountBytewise(b *testing.B) {
	var x, w = make([]byte, 128), make([]byte, 128)
	for i := 0; i < b.N; i++ {
		xnorPopcountBytewise(x, w, 1024)
	}
}

func BenchmarkXnorPopcountLanes(b *testing.B) {
	var x, w = make([]byte, 128), make([]byte, 128)
	for i := 0; i < b.N; i++ {
		xnorPopcountLanes(x, w, 1024)
	}
}
