package trainer

import "time"

import "github.com/pkg/errors"

import "github.com/neurlang/bitnet/datasets"
import "github.com/neurlang/bitnet/inference"
import "github.com/neurlang/bitnet/layer"
import "github.com/neurlang/bitnet/learning"
import "github.com/neurlang/bitnet/net/feedforward"

func check[I any](net *feedforward.Network[I], gen datasets.Generator) error {
	if gen.InputDim() != net.InDim() {
		return errors.Errorf("trainer: dataset has %d features, network %d", gen.InputDim(), net.InDim())
	}
	if net.OutDim() != 1 {
		return errors.Errorf("trainer: network has %d outputs, datasets label 1", net.OutDim())
	}
	return nil
}

// Train runs h.Batches training steps on batches drawn from the network's
// random source and returns the mean absolute error divided by h.Scale.
func Train[I any](net *feedforward.Network[I], gen datasets.Generator, h *learning.HyperParameters) (float64, error) {
	if err := check(net, gen); err != nil {
		return 0, err
	}
	if err := h.IsValid(); err != nil {
		return 0, err
	}
	inputs := make([]int8, layer.BatchSize*net.InDim())
	targets := make([]int8, layer.BatchSize)
	diffs := make([]float64, layer.BatchSize)
	var maeSum, lossSum float64
	for i := 0; i < h.Batches; i++ {
		gen.Batch(net.Rand(), h.Scale, inputs, targets)
		preds := net.TrainForward(net.Encode(inputs, layer.BatchSize))
		loss, mae := SquaredError(preds, targets, h.Scale, h.LearningRate, diffs)
		net.TrainBackward(diffs)
		maeSum += mae
		lossSum += loss
	}
	mae := maeSum / h.Scale / float64(h.Batches)
	h.Logger().Printf("train mae %f loss %f", mae, lossSum/float64(h.Batches))
	return mae, nil
}

// Test infers sample 0 of count fresh batches and returns prediction minus
// target of each, along with the time spent inferring.
func Test[I any](net *feedforward.Network[I], gen datasets.Generator, count int, scale float64) (diffs []float64, elapsed time.Duration, err error) {
	if err := check(net, gen); err != nil {
		return nil, 0, err
	}
	inputs := make([]int8, layer.BatchSize*net.InDim())
	targets := make([]int8, layer.BatchSize)
	diffs = make([]float64, count)
	for i := range diffs {
		gen.Batch(net.Rand(), scale, inputs, targets)
		start := time.Now()
		pred := inference.Predict(net, inputs[:net.InDim()])
		elapsed += time.Since(start)
		diffs[i] = float64(pred[0]) - float64(targets[0])
	}
	return diffs, elapsed, nil
}
