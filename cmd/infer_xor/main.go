package main

import "flag"
import "fmt"
import "os"

import "github.com/neurlang/bitnet/datasets"
import "github.com/neurlang/bitnet/datasets/parity"
import "github.com/neurlang/bitnet/datasets/registry"
import "github.com/neurlang/bitnet/inference"
import "github.com/neurlang/bitnet/learning"
import "github.com/neurlang/bitnet/net/feedforward"
import "github.com/neurlang/bitnet/rng"
import "github.com/neurlang/bitnet/trainer"

// maxEnumerated bounds the inputs whose combinations are all printed.
const maxEnumerated = 10

func run[I any](net *feedforward.Network[I], gen datasets.Generator, dstmodel string, tests int, scale float64) error {
	if err := net.ReadWeightsFromFile(dstmodel); err != nil {
		return err
	}
	if n := net.InDim(); n <= maxEnumerated {
		x := make([]int8, n)
		for c := 0; c < 1<<n; c++ {
			for i := range x {
				x[i] = datasets.Sign(uint32(c >> (n - 1 - i)))
			}
			sums := inference.Predict(net, x)
			fmt.Println(x, "->", sums, inference.Sign(sums[0]))
		}
	}
	diffs, elapsed, err := trainer.Test(net, gen, tests, scale)
	if err != nil {
		return err
	}
	fmt.Printf("test mae %.4f, %d forwards in %v\n", trainer.MeanAbsolute(diffs)/scale, len(diffs), elapsed)
	return nil
}

func main() {
	dstmodel := flag.String("dstmodel", "", "model file written by train_xor")
	dims := flag.String("dims", "2,32,16,1", "network dimensions, input first")
	bit := flag.Bool("bit", false, "infer with the bit packed network")
	name := flag.String("dataset", "xor", "dataset: xor or parity")
	bits := flag.Int("bits", parity.DefaultBits, "parity inputs")
	seed := flag.Uint("seed", 1, "random seed of the test samples")
	tests := flag.Int("tests", 1000, "test samples")
	scale := flag.Float64("scale", 16, "target scale")
	flag.Parse()

	if *dstmodel == "" {
		println("-dstmodel is required")
		os.Exit(2)
	}
	d, err := learning.ParseDims(*dims)
	if err != nil {
		println(err.Error())
		os.Exit(2)
	}
	gen, err := registry.New(*name, *bits)
	if err != nil {
		println(err.Error())
		os.Exit(2)
	}
	d[0] = gen.InputDim()

	r := rng.New(uint32(*seed))
	if *bit {
		var net *feedforward.Network[[]byte]
		if net, err = feedforward.NewBit(r, d...); err == nil {
			err = run(net, gen, *dstmodel, *tests, *scale)
		}
	} else {
		var net *feedforward.Network[[]int8]
		if net, err = feedforward.NewInt(r, d...); err == nil {
			err = run(net, gen, *dstmodel, *tests, *scale)
		}
	}
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}
}
