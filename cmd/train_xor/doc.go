// Package main provides a demo program training a bit network on the XOR
// dataset, or on popcount parity with -dataset parity. It prints the training
// and test error of every round and keeps the best weights in -dstmodel.
package main
