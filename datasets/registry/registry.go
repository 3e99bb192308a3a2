// Package registry selects a dataset generator by name
package registry

import "sort"

import "github.com/pkg/errors"

import "github.com/neurlang/bitnet/datasets"
import "github.com/neurlang/bitnet/datasets/parity"
import "github.com/neurlang/bitnet/datasets/xor"

var generators = map[string]func(bits int) datasets.Generator{
	"xor":    func(int) datasets.Generator { return xor.Generator{} },
	"parity": func(bits int) datasets.Generator { return parity.Generator{Bits: bits} },
}

// New returns the generator called name. bits is the input count of
// datasets with a variable number of inputs.
func New(name string, bits int) (datasets.Generator, error) {
	g, ok := generators[name]
	if !ok {
		return nil, errors.Errorf("registry: unknown dataset %q, have %v", name, Names())
	}
	return g(bits), nil
}

// Names lists the known datasets.
func Names() (o []string) {
	for k := range generators {
		o = append(o, k)
	}
	sort.Strings(o)
	return
}
