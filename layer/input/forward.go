package input

import "github.com/neurlang/bitnet/kernel"
import "github.com/neurlang/bitnet/layer"

// Forward copies one sample of dim features.
func (l *Int) Forward(in []int8) []int8 {
	if len(in) < l.dim {
		panic("input: short sample")
	}
	copy(l.output, in[:l.dim])
	return l.output
}

// TrainForward copies BatchSize samples of dim features.
func (l *Int) TrainForward(in []int8) []int8 {
	if len(in) < len(l.outputBatch) {
		panic("input: short batch")
	}
	copy(l.outputBatch, in[:len(l.outputBatch)])
	return l.outputBatch
}

// Forward copies one packed sample. The sample occupies kernel.Blocks(dim)
// bytes, anything past dim bits is ignored.
func (l *Bit) Forward(in []byte) []byte {
	if len(in) < l.blocks {
		panic("input: short sample")
	}
	copy(l.output, in[:l.blocks])
	kernel.ClearTail(l.output, l.dim)
	return l.output
}

// TrainForward copies BatchSize packed samples laid out in rows of
// kernel.PaddedBlocks(dim) bytes.
func (l *Bit) TrainForward(in []byte) []byte {
	if len(in) < (layer.BatchSize-1)*l.padded+l.blocks {
		panic("input: short batch")
	}
	for b := 0; b < layer.BatchSize; b++ {
		var row = l.outputBatch[b*l.padded : (b+1)*l.padded]
		copy(row, in[b*l.padded:b*l.padded+l.blocks])
		kernel.ClearTail(row, l.dim)
	}
	return l.outputBatch
}
