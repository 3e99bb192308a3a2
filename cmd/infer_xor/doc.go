// Package main provides a demo program running a trained bit network. It
// loads -dstmodel, prints the prediction for every input combination and
// reports the mean absolute error on freshly generated samples.
package main
