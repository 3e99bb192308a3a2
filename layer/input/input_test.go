package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neurlang/bitnet/kernel"
	"github.com/neurlang/bitnet/layer"
)

func TestNew(t *testing.T) {
	_, err := NewInt(0)
	assert.Error(t, err)
	_, err = NewBit(-1)
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewBit(0) })
	assert.Equal(t, 3, MustNewInt(3).OutDim())
}

func TestIntCopies(t *testing.T) {
	l := MustNewInt(2)
	out := l.Forward([]int8{1, -1, 1})
	assert.Equal(t, []int8{1, -1}, out)

	batch := make([]int8, layer.BatchSize*2)
	for i := range batch {
		batch[i] = int8(1 - 2*(i%2))
	}
	assert.Equal(t, batch, l.TrainForward(batch))
	assert.Panics(t, func() { l.Forward([]int8{1}) })
}

// garbage past the feature count never reaches the padding
func TestBitClearsPadding(t *testing.T) {
	l := MustNewBit(2)
	out := l.Forward([]byte{0xff})
	assert.Len(t, out, kernel.PaddedBlocks(2))
	assert.Equal(t, byte(0xc0), out[0])
	for _, v := range out[1:] {
		assert.Zero(t, v)
	}

	padded := kernel.PaddedBlocks(2)
	batch := make([]byte, layer.BatchSize*padded)
	for b := 0; b < layer.BatchSize; b++ {
		batch[b*padded] = 0xbf
		batch[b*padded+1] = 0xff
	}
	outs := l.TrainForward(batch)
	for b := 0; b < layer.BatchSize; b++ {
		assert.Equal(t, byte(0x80), outs[b*padded], "row %d", b)
		assert.Zero(t, outs[b*padded+1], "row %d", b)
	}
}

func TestNoParameters(t *testing.T) {
	l := MustNewBit(9)
	l.ResetWeight()
	l.TrainBackward(nil)
	assert.NoError(t, l.Save(nil))
	assert.NoError(t, l.Load(nil))
}
