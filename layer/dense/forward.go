package dense

import "github.com/neurlang/bitnet/kernel"
import "github.com/neurlang/bitnet/layer"

func (l *Int[I]) sums(x []int8, out []int32) {
	for o := 0; o < l.out; o++ {
		row := l.weight[o*l.in : (o+1)*l.in]
		var sum int32
		for i, w := range row {
			sum += int32(x[i]) * int32(w)
		}
		out[o] = sum + l.bias[o]
	}
}

func (l *Bit[I]) sums(x []byte, out []int32) {
	for o := 0; o < l.out; o++ {
		row := l.weight[o*l.blocks : (o+1)*l.blocks]
		out[o] = int32(kernel.Dot(x, row, l.padded)-l.padding) + l.bias[o]
	}
}

// Forward computes the sums of one sample.
func (l *Int[I]) Forward(in I) []int32 {
	l.sums(l.prev.Forward(in), l.output)
	return l.output
}

// Forward computes the sums of one sample.
func (l *Bit[I]) Forward(in I) []int32 {
	l.sums(l.prev.Forward(in), l.output)
	return l.output
}

// TrainForward computes the sums of a batch.
func (l *Int[I]) TrainForward(in I) []int32 {
	l.inputBatch = l.prev.TrainForward(in)
	for b := 0; b < layer.BatchSize; b++ {
		l.sums(l.inputBatch[b*l.in:(b+1)*l.in], l.outputBatch[b*l.out:(b+1)*l.out])
	}
	return l.outputBatch
}

// TrainForward computes the sums of a batch.
func (l *Bit[I]) TrainForward(in I) []int32 {
	l.inputBatch = l.prev.TrainForward(in)
	for b := 0; b < layer.BatchSize; b++ {
		l.sums(l.inputBatch[b*l.blocks:(b+1)*l.blocks], l.outputBatch[b*l.out:(b+1)*l.out])
	}
	return l.outputBatch
}

// TrainBackward updates the weights from the gradient of the batch sums
// and propagates the gradient of the inputs.
func (l *Int[I]) TrainBackward(grad []float64) {
	grads := l.backward(grad, func(b, i int) bool {
		return l.inputBatch[b*l.in+i] > 0
	}, l.set)
	l.prev.TrainBackward(grads)
}

// TrainBackward updates the weights from the gradient of the batch sums
// and propagates the gradient of the inputs.
func (l *Bit[I]) TrainBackward(grad []float64) {
	grads := l.backward(grad, func(b, i int) bool {
		return kernel.Bit(l.inputBatch[b*l.blocks:(b+1)*l.blocks], i)
	}, l.set)
	l.prev.TrainBackward(grads)
}
