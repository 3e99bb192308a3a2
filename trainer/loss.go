package trainer

import "math"

import "gonum.org/v1/gonum/stat"

// SquaredError writes lr * (target - prediction) of every sample to diffs
// and returns the halved mean squared error divided by scale together with
// the mean absolute error.
func SquaredError(preds []int32, targets []int8, scale, lr float64, diffs []float64) (loss, mae float64) {
	n := len(targets)
	if len(preds) < n || len(diffs) < n {
		panic("trainer: short predictions")
	}
	if n == 0 {
		return 0, 0
	}
	for i, t := range targets {
		y := float64(preds[i])
		diffs[i] = lr * (float64(t) - y)
		ae := math.Abs(y - float64(t))
		mae += ae
		loss += ae * ae / scale
	}
	mae /= float64(n)
	loss /= 2
	return loss / 2 / float64(n), mae
}

// MeanAbsolute returns the mean of |d| over diffs.
func MeanAbsolute(diffs []float64) float64 {
	if len(diffs) == 0 {
		return 0
	}
	abs := make([]float64, len(diffs))
	for i, d := range diffs {
		abs[i] = math.Abs(d)
	}
	return stat.Mean(abs, nil)
}
