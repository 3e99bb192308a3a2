// Package feedforward implements a feedforward network type
package feedforward

import "github.com/pkg/errors"

import "github.com/neurlang/bitnet/kernel"
import "github.com/neurlang/bitnet/layer"
import "github.com/neurlang/bitnet/layer/dense"
import "github.com/neurlang/bitnet/layer/input"
import "github.com/neurlang/bitnet/layer/sign"
import "github.com/neurlang/bitnet/rng"

// Network is a stack of dense layers separated by sign layers. I is the
// type of the encoded input, []int8 for int8 networks and []byte for bit
// networks. A Network is not safe for concurrent use.
type Network[I any] struct {
	top    layer.Layer[I, []int32]
	rand   *rng.Source
	dims   []int
	encode func(raw []int8, rows int) I
}

func checkDims(r *rng.Source, dims []int) error {
	if len(dims) < 2 {
		return errors.Errorf("feedforward: need at least 2 dimensions, got %d", len(dims))
	}
	for i, d := range dims {
		if d <= 0 {
			return errors.Errorf("feedforward: dimension %d is %d", i, d)
		}
	}
	if r == nil {
		return errors.New("feedforward: nil random source")
	}
	return nil
}

// NewInt creates an int8 network. dims[0] is the number of features, the
// last dimension the number of outputs and every dimension between them the
// width of a hidden layer. The weights are zero until ResetWeight or Load.
func NewInt(r *rng.Source, dims ...int) (*Network[[]int8], error) {
	if err := checkDims(r, dims); err != nil {
		return nil, err
	}
	in, err := input.NewInt(dims[0])
	if err != nil {
		return nil, err
	}
	var prev layer.Layer[[]int8, []int8] = in
	for _, dim := range dims[1 : len(dims)-1] {
		d, err := dense.NewInt[[]int8](prev, dim, r)
		if err != nil {
			return nil, err
		}
		if prev, err = sign.NewInt[[]int8](d, r); err != nil {
			return nil, err
		}
	}
	top, err := dense.NewInt[[]int8](prev, dims[len(dims)-1], r)
	if err != nil {
		return nil, err
	}
	features := dims[0]
	return &Network[[]int8]{
		top:  top,
		rand: r,
		dims: append([]int(nil), dims...),
		encode: func(raw []int8, rows int) []int8 {
			return raw[:rows*features]
		},
	}, nil
}

// MustNewInt creates an int8 network
func MustNewInt(r *rng.Source, dims ...int) *Network[[]int8] {
	o, err := NewInt(r, dims...)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// NewBit creates a bit network, see NewInt.
func NewBit(r *rng.Source, dims ...int) (*Network[[]byte], error) {
	if err := checkDims(r, dims); err != nil {
		return nil, err
	}
	in, err := input.NewBit(dims[0])
	if err != nil {
		return nil, err
	}
	var prev layer.Layer[[]byte, []byte] = in
	for _, dim := range dims[1 : len(dims)-1] {
		d, err := dense.NewBit[[]byte](prev, dim, r)
		if err != nil {
			return nil, err
		}
		if prev, err = sign.NewBit[[]byte](d, r); err != nil {
			return nil, err
		}
	}
	top, err := dense.NewBit[[]byte](prev, dims[len(dims)-1], r)
	if err != nil {
		return nil, err
	}
	features := dims[0]
	padded := kernel.PaddedBlocks(features)
	buf := make([]byte, layer.BatchSize*padded)
	return &Network[[]byte]{
		top:  top,
		rand: r,
		dims: append([]int(nil), dims...),
		encode: func(raw []int8, rows int) []byte {
			for b := 0; b < rows; b++ {
				kernel.PackSigns(buf[b*padded:(b+1)*padded], raw[b*features:(b+1)*features])
			}
			return buf[:rows*padded]
		},
	}, nil
}

// MustNewBit creates a bit network
func MustNewBit(r *rng.Source, dims ...int) *Network[[]byte] {
	o, err := NewBit(r, dims...)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// Encode turns rows samples of -1/+1 features into the input of the
// network. rows is 1 for Forward and layer.BatchSize for TrainForward.
// The result may share memory with raw or with the network.
func (f *Network[I]) Encode(raw []int8, rows int) I {
	if rows < 0 || rows > layer.BatchSize || len(raw) < rows*f.InDim() {
		panic("feedforward: bad encode")
	}
	return f.encode(raw, rows)
}

// Forward infers the output sums of a single encoded sample.
func (f *Network[I]) Forward(in I) []int32 {
	return f.top.Forward(in)
}

// TrainForward infers the output sums of a batch of encoded samples.
func (f *Network[I]) TrainForward(in I) []int32 {
	return f.top.TrainForward(in)
}

// TrainBackward trains the network on the gradient of the batch outputs.
func (f *Network[I]) TrainBackward(grad []float64) {
	f.top.TrainBackward(grad)
}

// ResetWeight randomizes every layer from the network's random source.
func (f *Network[I]) ResetWeight() {
	f.top.ResetWeight()
}

// Rand returns the random source shared by the layers.
func (f *Network[I]) Rand() *rng.Source {
	return f.rand
}

// InDim is the number of input features.
func (f *Network[I]) InDim() int {
	return f.dims[0]
}

// OutDim is the number of outputs.
func (f *Network[I]) OutDim() int {
	return f.dims[len(f.dims)-1]
}

// Dims returns the dimensions the network was created with.
func (f *Network[I]) Dims() []int {
	return append([]int(nil), f.dims...)
}
