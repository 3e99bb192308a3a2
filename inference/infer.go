// Package inference implements the inference stage of a trained bit network
package inference

import "github.com/neurlang/bitnet/net/feedforward"

// Predict infers one sample given as -1/+1 features. The returned sums
// belong to the network and are overwritten by the next call.
func Predict[I any](net *feedforward.Network[I], raw []int8) []int32 {
	return net.Forward(net.Encode(raw, 1))
}

// Sign is the class decided by an output sum, true meaning +1.
func Sign(sum int32) bool {
	return sum > 0
}
