// Package input implements the input layers terminating every layer stack
package input

import "io"

import "github.com/pkg/errors"

import "github.com/neurlang/bitnet/kernel"
import "github.com/neurlang/bitnet/layer"

// Int is the input layer of an int8 network. It copies -1/+1 features.
type Int struct {
	dim         int
	output      []int8
	outputBatch []int8
}

// Bit is the input layer of a bit network. It copies packed features into
// rows padded to kernel.SIMDBits, padding bits being always zero.
type Bit struct {
	dim         int
	blocks      int
	padded      int
	output      []byte
	outputBatch []byte
}

// NewInt creates an int8 input layer with dim features.
func NewInt(dim int) (*Int, error) {
	if dim <= 0 {
		return nil, errors.Errorf("input: invalid dimension %d", dim)
	}
	return &Int{
		dim:         dim,
		output:      make([]int8, dim),
		outputBatch: make([]int8, layer.BatchSize*dim),
	}, nil
}

// MustNewInt creates an int8 input layer with dim features
func MustNewInt(dim int) *Int {
	o, err := NewInt(dim)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// NewBit creates a packed input layer with dim features.
func NewBit(dim int) (*Bit, error) {
	if dim <= 0 {
		return nil, errors.Errorf("input: invalid dimension %d", dim)
	}
	padded := kernel.PaddedBlocks(dim)
	return &Bit{
		dim:         dim,
		blocks:      kernel.Blocks(dim),
		padded:      padded,
		output:      make([]byte, padded),
		outputBatch: make([]byte, layer.BatchSize*padded),
	}, nil
}

// MustNewBit creates a packed input layer with dim features
func MustNewBit(dim int) *Bit {
	o, err := NewBit(dim)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// OutDim returns the number of features.
func (l *Int) OutDim() int { return l.dim }

// OutDim returns the number of features.
func (l *Bit) OutDim() int { return l.dim }

// ResetWeight does nothing, input layers own no weights.
func (l *Int) ResetWeight() {}

// ResetWeight does nothing, input layers own no weights.
func (l *Bit) ResetWeight() {}

// TrainBackward discards the gradient.
func (l *Int) TrainBackward(grad []float64) {}

// TrainBackward discards the gradient.
func (l *Bit) TrainBackward(grad []float64) {}

func (l *Int) Save(w io.Writer) error { return nil }
func (l *Int) Load(r io.Reader) error { return nil }
func (l *Bit) Save(w io.Writer) error { return nil }
func (l *Bit) Load(r io.Reader) error { return nil }

var _ layer.Layer[[]int8, []int8] = (*Int)(nil)
var _ layer.Layer[[]byte, []byte] = (*Bit)(nil)
