// Package trainer drives the training of bit networks on synthetic datasets.
// It feeds mini-batches through TrainForward and TrainBackward with a squared
// error gradient, measures the mean absolute error of inference, and keeps
// the best weights on disk.
package trainer
