// Package main provides a program training an int8 network and a bit packed
// network side by side from the same seed. Both must end with the same
// weights and the same errors; the program prints their timings and weight
// digests and exits with status 1 when they differ.
package main
