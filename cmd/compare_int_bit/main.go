package main

import "flag"
import "fmt"
import "os"
import "time"

import "github.com/neurlang/bitnet/datasets"
import "github.com/neurlang/bitnet/datasets/parity"
import "github.com/neurlang/bitnet/datasets/registry"
import "github.com/neurlang/bitnet/kernel"
import "github.com/neurlang/bitnet/learning"
import "github.com/neurlang/bitnet/net/feedforward"
import "github.com/neurlang/bitnet/parallel"
import "github.com/neurlang/bitnet/rng"
import "github.com/neurlang/bitnet/trainer"

type result struct {
	name    string
	mae     float64
	train   time.Duration
	forward time.Duration
	digest  [32]byte
}

func run[I any](name string, net *feedforward.Network[I], gen datasets.Generator, h *learning.HyperParameters) (res result, err error) {
	res.name = name
	net.ResetWeight()
	start := time.Now()
	for round := 0; round < h.Rounds; round++ {
		if _, err = trainer.Train(net, gen, h); err != nil {
			return res, err
		}
	}
	res.train = time.Since(start)
	diffs, forward, err := trainer.Test(net, gen, h.Tests, h.Scale)
	if err != nil {
		return res, err
	}
	res.mae = trainer.MeanAbsolute(diffs) / h.Scale
	res.forward = forward
	res.digest, err = trainer.Digest(net)
	return res, err
}

func main() {
	h := learning.Default()
	seed := flag.Uint("seed", uint(h.Seed), "random seed")
	flag.IntVar(&h.Rounds, "rounds", h.Rounds, "training rounds")
	flag.IntVar(&h.Batches, "batches", h.Batches, "batches per round")
	flag.IntVar(&h.Tests, "tests", h.Tests, "test samples")
	flag.Float64Var(&h.Scale, "scale", h.Scale, "target scale, at most 127")
	flag.Float64Var(&h.LearningRate, "lr", h.LearningRate, "learning rate")
	dims := flag.String("dims", "2,32,16,1", "network dimensions, input first")
	name := flag.String("dataset", "xor", "dataset: xor or parity")
	bits := flag.Int("bits", parity.DefaultBits, "parity inputs")
	flag.Parse()

	h.Seed = uint32(*seed)
	var err error
	if h.Dims, err = learning.ParseDims(*dims); err != nil {
		println(err.Error())
		os.Exit(2)
	}
	gen, err := registry.New(*name, *bits)
	if err != nil {
		println(err.Error())
		os.Exit(2)
	}
	h.Dims[0] = gen.InputDim()
	if err := h.IsValid(); err != nil {
		println(err.Error())
		os.Exit(2)
	}

	println("popcount kernel:", kernel.Implementation())
	var results [2]result
	err = parallel.ForEachErr(len(results), len(results), func(i int) (err error) {
		if i == 0 {
			results[i], err = run("int", feedforward.MustNewInt(rng.New(h.Seed), h.Dims...), gen, h)
		} else {
			results[i], err = run("bit", feedforward.MustNewBit(rng.New(h.Seed), h.Dims...), gen, h)
		}
		return err
	})
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}
	for _, res := range results {
		fmt.Printf("%s: test mae %.4f train %v forward %v weights %x\n", res.name, res.mae, res.train, res.forward, res.digest)
	}
	if results[0].digest != results[1].digest || results[0].mae != results[1].mae {
		println("int and bit networks differ")
		os.Exit(1)
	}
	println("int and bit networks agree")
}
