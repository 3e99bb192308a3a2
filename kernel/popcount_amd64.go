//go:build !noasm && amd64

package kernel

import "github.com/klauspost/cpuid/v2"

func init() {
	// Check if the CPU has a hardware popcount
	if cpuid.CPU.Supports(cpuid.POPCNT) {
		XnorPopcount = xnorPopcountLanes
		implementation = "popcnt64x4"
	} else {
		XnorPopcount = xnorPopcountBytewise
		implementation = "bytewise"
	}
}
