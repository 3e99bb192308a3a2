// Package datasets implements the labelled mini-batch generators used for training
package datasets

import "github.com/neurlang/bitnet/rng"

// Generator produces labelled samples with -1/+1 features and one target
// per sample.
type Generator interface {

	// InputDim is the number of features per sample.
	InputDim() int

	// Batch fills len(targets) samples. inputs holds InputDim features per
	// sample, batch-major. Targets are scaled by scale and truncated toward
	// zero.
	Batch(r *rng.Source, scale float64, inputs, targets []int8)
}

// Check panics when inputs cannot hold the samples of targets.
func Check(g Generator, inputs, targets []int8) {
	if len(inputs) < len(targets)*g.InputDim() {
		panic("datasets: short input buffer")
	}
}

// Sign maps a random draw to a -1/+1 feature, odd draws being +1.
func Sign(v uint32) int8 {
	if v%2 == 1 {
		return 1
	}
	return -1
}
