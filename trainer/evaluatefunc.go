package trainer

import "crypto/sha256"

import "github.com/neurlang/bitnet/datasets"
import "github.com/neurlang/bitnet/net/feedforward"

// Digest returns the SHA-256 of the saved weights. Networks trained the same
// way have the same digest whatever their representation.
func Digest[I any](net *feedforward.Network[I]) (sum [32]byte, err error) {
	h := sha256.New()
	if err = net.Save(h); err != nil {
		return sum, err
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// NewEvaluateFunc returns a function testing the network on tests samples.
// It reports the mean absolute error divided by scale and the digest of the
// weights. When the error improves on *best the weights are written to
// *dstmodel and *best is updated. A negative *best accepts the first result.
func NewEvaluateFunc[I any](net *feedforward.Network[I], gen datasets.Generator, tests int, scale float64,
	best *float64, dstmodel *string) func() (float64, [32]byte, error) {

	return func() (float64, [32]byte, error) {
		diffs, _, err := Test(net, gen, tests, scale)
		if err != nil {
			return 0, [32]byte{}, err
		}
		mae := MeanAbsolute(diffs) / scale
		state, err := Digest(net)
		if err != nil {
			return 0, state, err
		}
		if best != nil && *best >= 0 && mae >= *best {
			return mae, state, nil
		}
		if best != nil {
			*best = mae
		}
		if dstmodel != nil && *dstmodel != "" {
			if err := net.WriteWeightsToFile(*dstmodel); err != nil {
				return mae, state, err
			}
		}
		return mae, state, nil
	}
}
