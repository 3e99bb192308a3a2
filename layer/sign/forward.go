package sign

import "github.com/neurlang/bitnet/kernel"
import "github.com/neurlang/bitnet/layer"
import "github.com/neurlang/bitnet/rng"

// fire draws whether a unit with sum x outputs +1 during training. The
// probability of +1 is (clip(x, -1, 1) + 1) / 2 and exactly one number is
// drawn per unit.
func fire(r *rng.Source, x int32) bool {
	p := 0.5
	if x > 0 {
		p = 1
	} else if x < 0 {
		p = 0
	}
	return r.Real01() < p
}

// gate passes the gradient where the hard tanh is linear, that is |x| <= 1.
func gate(grads, grad []float64, sums []int32) []float64 {
	if len(grad) < len(grads) {
		panic("sign: short gradient")
	}
	for j, x := range sums[:len(grads)] {
		if x >= -1 && x <= 1 {
			grads[j] = grad[j]
		} else {
			grads[j] = 0
		}
	}
	return grads
}

// Forward outputs +1 where the sum is positive and -1 elsewhere.
func (l *Int[I]) Forward(in I) []int8 {
	sums := l.prev.Forward(in)
	for i := range l.output {
		if sums[i] > 0 {
			l.output[i] = 1
		} else {
			l.output[i] = -1
		}
	}
	return l.output
}

// Forward sets the bits of positive sums.
func (l *Bit[I]) Forward(in I) []byte {
	kernel.PackSigns(l.output, l.prev.Forward(in)[:l.dim])
	return l.output
}

// TrainForward samples the activations of a batch.
func (l *Int[I]) TrainForward(in I) []int8 {
	l.inputBatch = l.prev.TrainForward(in)
	for j := range l.outputBatch {
		if fire(l.rand, l.inputBatch[j]) {
			l.outputBatch[j] = 1
		} else {
			l.outputBatch[j] = -1
		}
	}
	return l.outputBatch
}

// TrainForward samples the activations of a batch.
func (l *Bit[I]) TrainForward(in I) []byte {
	l.inputBatch = l.prev.TrainForward(in)
	for b := 0; b < layer.BatchSize; b++ {
		row := l.outputBatch[b*l.padded : (b+1)*l.padded]
		for i := 0; i < l.dim; i++ {
			kernel.SetBit(row, i, fire(l.rand, l.inputBatch[b*l.dim+i]))
		}
	}
	return l.outputBatch
}

// TrainBackward gates the gradient and hands it to the predecessor.
func (l *Int[I]) TrainBackward(grad []float64) {
	l.prev.TrainBackward(gate(l.grads, grad, l.inputBatch))
}

// TrainBackward gates the gradient and hands it to the predecessor.
func (l *Bit[I]) TrainBackward(grad []float64) {
	l.prev.TrainBackward(gate(l.grads, grad, l.inputBatch))
}
