// Package layer defines the interface shared by every stage of a bit network
package layer

import "io"

// BatchSize is the number of samples processed by TrainForward and TrainBackward.
const BatchSize = 16

// Layer is one stage of a layer stack whose network input has type I and whose
// output has type O. A layer owns its predecessor; calls cascade down to the
// input layer and results flow back up.
//
// Slices returned by Forward and TrainForward belong to the layer and stay
// valid until the next call into it.
type Layer[I, O any] interface {

	// Forward infers a single sample.
	Forward(in I) O

	// TrainForward infers BatchSize samples, keeping what TrainBackward needs.
	TrainForward(in I) O

	// TrainBackward consumes the gradient of the batch outputs, updates the
	// weights and hands the gradient of the inputs to the predecessor.
	TrainBackward(grad []float64)

	// ResetWeight randomizes the weights of this layer and its predecessors.
	ResetWeight()

	// Save writes the parameters of this layer and then its predecessors.
	Save(w io.Writer) error

	// Load reads parameters in the order Save wrote them.
	Load(r io.Reader) error

	// OutDim is the number of output values per sample.
	OutDim() int
}
