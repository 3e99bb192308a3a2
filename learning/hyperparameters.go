// Package learning holds the hyperparameters and logging of a training run
package learning

import "io"
import "log"
import "os"
import "strconv"
import "strings"

import "github.com/pkg/errors"

// MaxScale is the largest target scale representable by int8 targets.
const MaxScale = 127

// HyperParameters configures a training run.
type HyperParameters struct {
	Seed uint32 // seed of the network's random source
	Dims []int  // features, hidden widths and outputs

	Rounds  int // number of Train calls
	Batches int // mini-batches per round
	Tests   int // test batches evaluated after each round

	Scale        float64 // magnitude of the targets
	LearningRate float64 // multiplies the error to form the gradient

	BitInput bool // train the packed representation instead of int8

	l *log.Logger
}

// Default returns the XOR setup: seed 42, a 2-32-16-1 network and 100
// rounds of 100 batches at scale 16 and learning rate 1e-4.
func Default() *HyperParameters {
	return &HyperParameters{
		Seed:         42,
		Dims:         []int{2, 32, 16, 1},
		Rounds:       100,
		Batches:      100,
		Tests:        100,
		Scale:        16,
		LearningRate: 1e-4,
	}
}

// SetLogger appends the training log to filename.
func (h *HyperParameters) SetLogger(filename string) error {
	outfile, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrapf(err, "learning: open log %s", filename)
	}
	h.l = log.New(outfile, "", 0)
	return nil
}

// SetOutput logs to w.
func (h *HyperParameters) SetOutput(w io.Writer) {
	h.l = log.New(w, "", 0)
}

// Logger returns the training log, discarding everything when none was set.
func (h *HyperParameters) Logger() *log.Logger {
	if h.l == nil {
		return log.New(io.Discard, "", 0)
	}
	return h.l
}

// IsValid reports the first invalid hyperparameter.
func (h *HyperParameters) IsValid() error {
	if len(h.Dims) < 2 {
		return errors.Errorf("learning: need at least 2 dimensions, got %v", h.Dims)
	}
	for _, d := range h.Dims {
		if d <= 0 {
			return errors.Errorf("learning: bad dimensions %v", h.Dims)
		}
	}
	if h.Rounds < 0 || h.Batches <= 0 || h.Tests < 0 {
		return errors.Errorf("learning: bad schedule %d rounds of %d batches, %d tests", h.Rounds, h.Batches, h.Tests)
	}
	if h.Scale <= 0 || h.Scale > MaxScale {
		return errors.Errorf("learning: scale %v outside (0, %d]", h.Scale, MaxScale)
	}
	if h.LearningRate <= 0 {
		return errors.Errorf("learning: learning rate %v is not positive", h.LearningRate)
	}
	return nil
}

// ParseDims parses comma separated dimensions such as "2,32,16,1".
func ParseDims(s string) ([]int, error) {
	var dims []int
	for _, f := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "learning: bad dimensions %q", s)
		}
		dims = append(dims, d)
	}
	return dims, nil
}
