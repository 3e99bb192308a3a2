// Package xor implements the two input XOR dataset
package xor

import "github.com/neurlang/bitnet/datasets"
import "github.com/neurlang/bitnet/rng"

// Generator draws two -1/+1 inputs. The target is +scale when they are
// equal and -scale otherwise.
type Generator struct{}

// InputDim returns 2.
func (Generator) InputDim() int { return 2 }

// Batch fills len(targets) XOR samples.
func (g Generator) Batch(r *rng.Source, scale float64, inputs, targets []int8) {
	datasets.Check(g, inputs, targets)
	for b := range targets {
		x1 := datasets.Sign(r.Uint32())
		x2 := datasets.Sign(r.Uint32())
		inputs[2*b] = x1
		inputs[2*b+1] = x2
		t := -1.0
		if x1 == x2 {
			t = 1
		}
		targets[b] = int8(t * scale)
	}
}

var _ datasets.Generator = Generator{}
