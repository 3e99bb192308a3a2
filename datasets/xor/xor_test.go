package xor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neurlang/bitnet/rng"
)

func TestBatch(t *testing.T) {
	var g Generator
	inputs := make([]int8, 2*64)
	targets := make([]int8, 64)
	g.Batch(rng.New(42), 16, inputs, targets)

	ref := rng.New(42)
	seen := map[[2]int8]bool{}
	for b, target := range targets {
		x := [2]int8{inputs[2*b], inputs[2*b+1]}
		seen[x] = true
		for i, v := range x {
			want := int8(-1)
			if ref.Uint32()%2 == 1 {
				want = 1
			}
			assert.Equal(t, want, v, "sample %d input %d", b, i)
		}
		if x[0] == x[1] {
			assert.Equal(t, int8(16), target)
		} else {
			assert.Equal(t, int8(-16), target)
		}
	}
	assert.Len(t, seen, 4)
	assert.Panics(t, func() { g.Batch(rng.New(1), 16, inputs[:3], targets[:2]) })
}
