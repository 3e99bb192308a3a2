// Package sign implements the sign activation, trained as a stochastic hard tanh
package sign

import "io"

import "github.com/pkg/errors"

import "github.com/neurlang/bitnet/kernel"
import "github.com/neurlang/bitnet/layer"
import "github.com/neurlang/bitnet/rng"

// Int turns the int32 sums of a dense layer into -1/+1 int8 activations.
type Int[I any] struct {
	prev layer.Layer[I, []int32]
	dim  int
	rand *rng.Source

	output      []int8
	outputBatch []int8
	inputBatch  []int32 // borrowed from prev until the next TrainForward
	grads       []float64
}

// Bit turns the int32 sums of a dense layer into packed activations, one
// row of kernel.PaddedBlocks(dim) bytes per sample.
type Bit[I any] struct {
	prev   layer.Layer[I, []int32]
	dim    int
	padded int
	rand   *rng.Source

	output      []byte
	outputBatch []byte
	inputBatch  []int32
	grads       []float64
}

func check[I any](prev layer.Layer[I, []int32], r *rng.Source) error {
	if prev == nil {
		return errors.New("sign: nil previous layer")
	}
	if prev.OutDim() <= 0 {
		return errors.Errorf("sign: invalid dimension %d", prev.OutDim())
	}
	if r == nil {
		return errors.New("sign: nil random source")
	}
	return nil
}

// NewInt creates an int8 sign layer as wide as prev.
func NewInt[I any](prev layer.Layer[I, []int32], r *rng.Source) (*Int[I], error) {
	if err := check(prev, r); err != nil {
		return nil, err
	}
	dim := prev.OutDim()
	return &Int[I]{
		prev:        prev,
		dim:         dim,
		rand:        r,
		output:      make([]int8, dim),
		outputBatch: make([]int8, layer.BatchSize*dim),
		grads:       make([]float64, layer.BatchSize*dim),
	}, nil
}

// MustNewInt creates an int8 sign layer as wide as prev
func MustNewInt[I any](prev layer.Layer[I, []int32], r *rng.Source) *Int[I] {
	o, err := NewInt(prev, r)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// NewBit creates a packed sign layer as wide as prev.
func NewBit[I any](prev layer.Layer[I, []int32], r *rng.Source) (*Bit[I], error) {
	if err := check(prev, r); err != nil {
		return nil, err
	}
	dim := prev.OutDim()
	padded := kernel.PaddedBlocks(dim)
	return &Bit[I]{
		prev:        prev,
		dim:         dim,
		padded:      padded,
		rand:        r,
		output:      make([]byte, padded),
		outputBatch: make([]byte, layer.BatchSize*padded),
		grads:       make([]float64, layer.BatchSize*dim),
	}, nil
}

// MustNewBit creates a packed sign layer as wide as prev
func MustNewBit[I any](prev layer.Layer[I, []int32], r *rng.Source) *Bit[I] {
	o, err := NewBit(prev, r)
	if err != nil {
		panic(err.Error())
	}
	return o
}

func (l *Int[I]) OutDim() int { return l.dim }
func (l *Bit[I]) OutDim() int { return l.dim }

// ResetWeight resets the predecessors.
func (l *Int[I]) ResetWeight() { l.prev.ResetWeight() }

// ResetWeight resets the predecessors.
func (l *Bit[I]) ResetWeight() { l.prev.ResetWeight() }

// Save saves the predecessors, sign layers have no parameters.
func (l *Int[I]) Save(w io.Writer) error { return l.prev.Save(w) }

// Save saves the predecessors, sign layers have no parameters.
func (l *Bit[I]) Save(w io.Writer) error { return l.prev.Save(w) }

func (l *Int[I]) Load(r io.Reader) error { return l.prev.Load(r) }
func (l *Bit[I]) Load(r io.Reader) error { return l.prev.Load(r) }
