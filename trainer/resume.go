package trainer

import "github.com/neurlang/bitnet/net/feedforward"

// Resume loads the weights in dstmodel when resuming was requested.
func Resume[I any](net *feedforward.Network[I], resume *bool, dstmodel *string) error {
	if resume != nil && *resume && dstmodel != nil && *dstmodel != "" {
		return net.ReadWeightsFromFile(*dstmodel)
	}
	return nil
}
