package main

import "flag"
import "fmt"
import "os"

import "github.com/neurlang/bitnet/datasets"
import "github.com/neurlang/bitnet/datasets/parity"
import "github.com/neurlang/bitnet/datasets/registry"
import "github.com/neurlang/bitnet/kernel"
import "github.com/neurlang/bitnet/learning"
import "github.com/neurlang/bitnet/net/feedforward"
import "github.com/neurlang/bitnet/rng"
import "github.com/neurlang/bitnet/trainer"

func run[I any](net *feedforward.Network[I], gen datasets.Generator, h *learning.HyperParameters,
	resume *bool, dstmodel *string) error {

	if err := trainer.Resume(net, resume, dstmodel); err != nil {
		return err
	}
	best := -1.0
	evaluate := trainer.NewEvaluateFunc(net, gen, h.Tests, h.Scale, &best, dstmodel)
	for round := 0; round < h.Rounds; round++ {
		mae, err := trainer.Train(net, gen, h)
		if err != nil {
			return err
		}
		test, state, err := evaluate()
		if err != nil {
			return err
		}
		fmt.Printf("[round %d] train mae %.4f test mae %.4f best %.4f %x\n", round, mae, test, best, state[:8])
	}
	diffs, elapsed, err := trainer.Test(net, gen, h.Tests, h.Scale)
	if err != nil {
		return err
	}
	fmt.Printf("final test mae %.4f, %d forwards in %v\n", trainer.MeanAbsolute(diffs)/h.Scale, len(diffs), elapsed)
	return nil
}

func main() {
	h := learning.Default()

	seed := flag.Uint("seed", uint(h.Seed), "random seed")
	flag.IntVar(&h.Rounds, "rounds", h.Rounds, "training rounds")
	flag.IntVar(&h.Batches, "batches", h.Batches, "batches per round")
	flag.IntVar(&h.Tests, "tests", h.Tests, "test samples after each round")
	flag.Float64Var(&h.Scale, "scale", h.Scale, "target scale, at most 127")
	flag.Float64Var(&h.LearningRate, "lr", h.LearningRate, "learning rate")
	flag.BoolVar(&h.BitInput, "bit", false, "train the bit packed network")
	dims := flag.String("dims", "2,32,16,1", "network dimensions, input first")
	name := flag.String("dataset", "xor", "dataset: xor or parity")
	bits := flag.Int("bits", parity.DefaultBits, "parity inputs")
	dstmodel := flag.String("dstmodel", "", "model destination file")
	resume := flag.Bool("resume", false, "resume training")
	logfile := flag.String("log", "", "append the training log to this file")
	flag.Bool("pgo", false, "enable pgo")
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
	if h.Dims[0] != gen.InputDim() {
		fmt.Printf("using %d inputs for dataset %s\n", gen.InputDim(), *name)
		h.Dims[0] = gen.InputDim()
	}
	if err := h.IsValid(); err != nil {
		println(err.Error())
		os.Exit(2)
	}
	if *logfile != "" {
		if err := h.SetLogger(*logfile); err != nil {
			println(err.Error())
			os.Exit(1)
		}
	}

	println("popcount kernel:", kernel.Implementation())
	r := rng.New(h.Seed)
	if h.BitInput {
		net := feedforward.MustNewBit(r, h.Dims...)
		net.ResetWeight()
		err = run(net, gen, h, resume, dstmodel)
	} else {
		net := feedforward.MustNewInt(r, h.Dims...)
		net.ResetWeight()
		err = run(net, gen, h, resume, dstmodel)
	}
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}
}
