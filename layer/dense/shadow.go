package dense

import "encoding/binary"
import "fmt"
import "io"
import "math"

import "github.com/chewxy/math32"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"
import "gorgonia.org/vecf32"

import "github.com/neurlang/bitnet/layer"
import "github.com/neurlang/bitnet/rng"

// shadow holds the full precision state behind a quantized dense layer.
// The quantized weights live in the embedding layer, which exposes them to
// shadow through a setter.
type shadow struct {
	name    string
	in, out int
	rand    *rng.Source

	shadowWeight []float32 // out x in, clipped to [-1, 1]
	shadowBias   []float64
	bias         []int32

	grads  []float64 // BatchSize x in, lent to the predecessor
	signs  []float64 // out x in, +/-1 of shadowWeight
	inputs []float32 // +/-1 of one batch row

	ones, negOnes []float32
}

// setter stores the quantized weight of (o, i), positive meaning +1.
type setter func(o, i int, positive bool)

func newShadow(in, out int, r *rng.Source) shadow {
	s := shadow{
		name:         fmt.Sprintf("dense %d->%d", in, out),
		in:           in,
		out:          out,
		rand:         r,
		shadowWeight: make([]float32, out*in),
		shadowBias:   make([]float64, out),
		bias:         make([]int32, out),
		grads:        make([]float64, layer.BatchSize*in),
		signs:        make([]float64, out*in),
		inputs:       make([]float32, in),
		ones:         make([]float32, out*in),
		negOnes:      make([]float32, out*in),
	}
	for j := range s.ones {
		s.ones[j] = 1
		s.negOnes[j] = -1
	}
	return s
}

func validate(prevDim, dim int, r *rng.Source) error {
	if prevDim <= 0 {
		return errors.Errorf("dense: invalid input dimension %d", prevDim)
	}
	if dim <= 0 {
		return errors.Errorf("dense: invalid output dimension %d", dim)
	}
	if r == nil {
		return errors.New("dense: nil random source")
	}
	return nil
}

// reset draws every shadow weight uniformly from [-1, 1) in row major order
// and clears the biases.
func (s *shadow) reset(set setter) {
	for o := 0; o < s.out; o++ {
		for i := 0; i < s.in; i++ {
			w := float32(2*s.rand.Real01() - 1)
			s.shadowWeight[o*s.in+i] = w
			set(o, i, w > 0)
		}
		s.shadowBias[o] = 0
		s.bias[o] = 0
	}
}

// backward applies the straight-through estimator. positive reports whether
// input i of batch row b was +1. The returned gradient of the inputs is
// computed with the weights as they were before the update.
func (s *shadow) backward(grad []float64, positive func(b, i int) bool, set setter) []float64 {
	if len(grad) < layer.BatchSize*s.out {
		panic("dense: short gradient")
	}
	for j, w := range s.shadowWeight {
		if w > 0 {
			s.signs[j] = 1
		} else {
			s.signs[j] = -1
		}
	}
	for b := 0; b < layer.BatchSize; b++ {
		dst := s.grads[b*s.in : (b+1)*s.in]
		for i := range dst {
			dst[i] = 0
		}
		for o := 0; o < s.out; o++ {
			floats.AddScaled(dst, grad[b*s.out+o], s.signs[o*s.in:(o+1)*s.in])
		}
	}

	for b := 0; b < layer.BatchSize; b++ {
		for i := range s.inputs {
			if positive(b, i) {
				s.inputs[i] = 1
			} else {
				s.inputs[i] = -1
			}
		}
		for o := 0; o < s.out; o++ {
			g := grad[b*s.out+o]
			if g == 0 {
				continue
			}
			s.shadowBias[o] += g
			vecf32.IncrScale(s.inputs, float32(g), s.shadowWeight[o*s.in:(o+1)*s.in])
		}
	}

	s.binarize(set)
	return s.grads
}

// binarize clips the shadow weights and requantizes weights and biases.
func (s *shadow) binarize(set setter) {
	vecf32.Max(s.shadowWeight, s.negOnes)
	vecf32.Min(s.shadowWeight, s.ones)
	for o := 0; o < s.out; o++ {
		for i := 0; i < s.in; i++ {
			set(o, i, s.shadowWeight[o*s.in+i] > 0)
		}
		b := math.Round(s.shadowBias[o])
		b = math.Max(math.MinInt32, math.Min(math.MaxInt32, b))
		s.bias[o] = int32(b)
	}
}

func (s *shadow) save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(s.out)); err != nil {
		return errors.Wrapf(err, "%s: write dimension", s.name)
	}
	if err := binary.Write(w, binary.LittleEndian, s.shadowBias); err != nil {
		return errors.Wrapf(err, "%s: write bias", s.name)
	}
	if err := binary.Write(w, binary.LittleEndian, s.shadowWeight); err != nil {
		return errors.Wrapf(err, "%s: write weights", s.name)
	}
	return nil
}

func (s *shadow) load(r io.Reader, set setter) error {
	var dim uint32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return errors.Wrapf(err, "%s: read dimension", s.name)
	}
	if int(dim) != s.out {
		return errors.WithStack(&layer.DimensionError{Layer: s.name, Expected: s.out, Found: int(dim)})
	}
	bias := make([]float64, s.out)
	if err := binary.Read(r, binary.LittleEndian, bias); err != nil {
		return errors.Wrapf(err, "%s: read bias", s.name)
	}
	weight := make([]float32, s.out*s.in)
	if err := binary.Read(r, binary.LittleEndian, weight); err != nil {
		return errors.Wrapf(err, "%s: read weights", s.name)
	}
	for o, v := range bias {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Errorf("%s: bias %d is not finite", s.name, o)
		}
	}
	for j, v := range weight {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return errors.Errorf("%s: weight %d is not finite", s.name, j)
		}
	}
	copy(s.shadowBias, bias)
	copy(s.shadowWeight, weight)
	s.binarize(set)
	return nil
}
