// Package dense implements the fully connected layer with -1/+1 weights
package dense

import "io"

import "github.com/pkg/errors"

import "github.com/neurlang/bitnet/kernel"
import "github.com/neurlang/bitnet/layer"
import "github.com/neurlang/bitnet/rng"

// Int is a dense layer over int8 activations with int8 -1/+1 weights.
// It outputs raw int32 sums, bias included.
type Int[I any] struct {
	shadow

	prev   layer.Layer[I, []int8]
	weight []int8 // out x in

	output      []int32
	outputBatch []int32
	inputBatch  []int8 // borrowed from prev until the next TrainForward
}

// Bit is a dense layer over packed activations with packed weights. Each
// weight row is padded to kernel.SIMDBits with zero bits. It outputs raw
// int32 sums, bias included.
type Bit[I any] struct {
	shadow

	prev    layer.Layer[I, []byte]
	padded  int // input bits incl. padding
	blocks  int // bytes per padded row
	padding int // padding bits per row
	weight  []byte

	output      []int32
	outputBatch []int32
	inputBatch  []byte // borrowed from prev until the next TrainForward
}

// NewInt creates an int8 dense layer with dim outputs on top of prev.
func NewInt[I any](prev layer.Layer[I, []int8], dim int, r *rng.Source) (*Int[I], error) {
	if prev == nil {
		return nil, errors.New("dense: nil previous layer")
	}
	if err := validate(prev.OutDim(), dim, r); err != nil {
		return nil, err
	}
	in := prev.OutDim()
	return &Int[I]{
		shadow:      newShadow(in, dim, r),
		prev:        prev,
		weight:      make([]int8, dim*in),
		output:      make([]int32, dim),
		outputBatch: make([]int32, layer.BatchSize*dim),
	}, nil
}

// MustNewInt creates an int8 dense layer with dim outputs on top of prev
func MustNewInt[I any](prev layer.Layer[I, []int8], dim int, r *rng.Source) *Int[I] {
	o, err := NewInt(prev, dim, r)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// NewBit creates a packed dense layer with dim outputs on top of prev.
func NewBit[I any](prev layer.Layer[I, []byte], dim int, r *rng.Source) (*Bit[I], error) {
	if prev == nil {
		return nil, errors.New("dense: nil previous layer")
	}
	if err := validate(prev.OutDim(), dim, r); err != nil {
		return nil, err
	}
	in := prev.OutDim()
	padded := kernel.PaddedBits(in)
	return &Bit[I]{
		shadow:      newShadow(in, dim, r),
		prev:        prev,
		padded:      padded,
		blocks:      kernel.Blocks(padded),
		padding:     padded - in,
		weight:      make([]byte, dim*kernel.Blocks(padded)),
		output:      make([]int32, dim),
		outputBatch: make([]int32, layer.BatchSize*dim),
	}, nil
}

// MustNewBit creates a packed dense layer with dim outputs on top of prev
func MustNewBit[I any](prev layer.Layer[I, []byte], dim int, r *rng.Source) *Bit[I] {
	o, err := NewBit(prev, dim, r)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// OutDim returns the number of neurons.
func (l *Int[I]) OutDim() int { return l.out }

// OutDim returns the number of neurons.
func (l *Bit[I]) OutDim() int { return l.out }

// ResetWeight randomizes the weights, clears the bias and resets the predecessors.
func (l *Int[I]) ResetWeight() {
	l.reset(l.set)
	l.prev.ResetWeight()
}

// ResetWeight randomizes the weights, clears the bias and resets the predecessors.
func (l *Bit[I]) ResetWeight() {
	l.reset(l.set)
	l.prev.ResetWeight()
}

// Save writes the dimension, shadow bias and shadow weights, then the predecessors.
func (l *Int[I]) Save(w io.Writer) error {
	if err := l.save(w); err != nil {
		return err
	}
	return l.prev.Save(w)
}

// Save writes the dimension, shadow bias and shadow weights, then the predecessors.
func (l *Bit[I]) Save(w io.Writer) error {
	if err := l.save(w); err != nil {
		return err
	}
	return l.prev.Save(w)
}

// Load reads what Save wrote and requantizes.
func (l *Int[I]) Load(r io.Reader) error {
	if err := l.load(r, l.set); err != nil {
		return err
	}
	return l.prev.Load(r)
}

// Load reads what Save wrote and requantizes.
func (l *Bit[I]) Load(r io.Reader) error {
	if err := l.load(r, l.set); err != nil {
		return err
	}
	return l.prev.Load(r)
}

func (l *Int[I]) set(o, i int, positive bool) {
	if positive {
		l.weight[o*l.in+i] = 1
	} else {
		l.weight[o*l.in+i] = -1
	}
}

func (l *Bit[I]) set(o, i int, positive bool) {
	kernel.SetBit(l.weight[o*l.blocks:(o+1)*l.blocks], i, positive)
}
