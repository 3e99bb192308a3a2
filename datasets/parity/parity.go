// Package parity implements the popcount parity dataset
package parity

import "github.com/neurlang/bitnet/datasets"
import "github.com/neurlang/bitnet/rng"

// DefaultBits is the number of inputs used when Bits is zero.
const DefaultBits = 8

// Generator draws Bits -1/+1 inputs. The target is scale/2 when an odd
// number of them is +1 and -scale/2 otherwise.
type Generator struct {
	Bits int
}

// InputDim returns the number of inputs.
func (g Generator) InputDim() int {
	if g.Bits <= 0 {
		return DefaultBits
	}
	return g.Bits
}

// Batch fills len(targets) parity samples.
func (g Generator) Batch(r *rng.Source, scale float64, inputs, targets []int8) {
	datasets.Check(g, inputs, targets)
	n := g.InputDim()
	for b := range targets {
		var t float64
		for i := 0; i < n; i++ {
			x := datasets.Sign(r.Uint32())
			inputs[b*n+i] = x
			if x > 0 {
				t = 1 - t
			}
		}
		targets[b] = int8(t*scale - scale/2)
	}
}

var _ datasets.Generator = Generator{}
