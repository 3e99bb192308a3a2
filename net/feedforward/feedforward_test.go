package feedforward

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/bitnet/kernel"
	"github.com/neurlang/bitnet/layer"
	"github.com/neurlang/bitnet/rng"
)

// step trains net on one batch drawn from its own random source. The
// target of every output is the product of the first two features.
func step[I any](f *Network[I], raw []int8, grad []float64) []int32 {
	r := f.Rand()
	for j := range raw {
		raw[j] = int8(2*(r.Uint32()%2)) - 1
	}
	out := f.TrainForward(f.Encode(raw, layer.BatchSize))
	sums := append([]int32(nil), out...)
	for b := 0; b < layer.BatchSize; b++ {
		target := 8 * float64(raw[b*f.InDim()]*raw[b*f.InDim()+1])
		for o := 0; o < f.OutDim(); o++ {
			grad[b*f.OutDim()+o] = 1e-3 * (target - float64(sums[b*f.OutDim()+o]))
		}
	}
	f.TrainBackward(grad)
	return sums
}

func weights[I any](t *testing.T, f *Network[I]) []byte {
	var buf bytes.Buffer
	require.NoError(t, f.Save(&buf))
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	r := rng.New(1)
	_, err := NewInt(r, 3)
	assert.Error(t, err)
	_, err = NewBit(r, 3, 0, 1)
	assert.Error(t, err)
	_, err = NewBit(nil, 3, 1)
	assert.Error(t, err)
	assert.Panics(t, func() { MustNewInt(r) })

	dims := []int{4, 8, 2}
	f := MustNewInt(r, dims...)
	dims[0] = 100
	assert.Equal(t, 4, f.InDim())
	assert.Equal(t, 2, f.OutDim())
	assert.Equal(t, []int{4, 8, 2}, f.Dims())
	assert.Same(t, r, f.Rand())
}

func TestEncode(t *testing.T) {
	raw := []int8{1, -1, 1, -1, -1, 1}
	fi := MustNewInt(rng.New(1), 3, 1)
	assert.Equal(t, []int8{1, -1, 1}, fi.Encode(raw, 1))

	fb := MustNewBit(rng.New(1), 3, 1)
	enc := fb.Encode(raw, 2)
	require.Len(t, enc, 2*kernel.SIMDBytes)
	assert.Equal(t, byte(0xa0), enc[0])
	assert.Equal(t, byte(0x20), enc[kernel.SIMDBytes])
	assert.Panics(t, func() { fb.Encode(raw, 3) })
}

func TestIntBitEquivalence(t *testing.T) {
	for _, dims := range [][]int{{2, 32, 16, 1}, {5, 33, 2}, {300, 17, 9, 3}, {7, 1}} {
		for seed := uint32(1); seed <= 3; seed++ {
			fi := MustNewInt(rng.New(seed), dims...)
			fb := MustNewBit(rng.New(seed), dims...)
			fi.ResetWeight()
			fb.ResetWeight()
			require.Equal(t, weights(t, fi), weights(t, fb), "dims %v seed %d", dims, seed)

			raw := make([]int8, layer.BatchSize*dims[0])
			gi := make([]float64, layer.BatchSize*dims[len(dims)-1])
			gb := make([]float64, len(gi))
			for s := 0; s < 25; s++ {
				si := step(fi, raw, gi)
				sb := step(fb, raw, gb)
				if diff := cmp.Diff(si, sb); diff != "" {
					t.Fatalf("dims %v seed %d step %d: train outputs differ (-int +bit):\n%s", dims, seed, s, diff)
				}
			}
			for s := 0; s < layer.BatchSize; s++ {
				x := raw[s*dims[0] : (s+1)*dims[0]]
				oi := append([]int32(nil), fi.Forward(fi.Encode(x, 1))...)
				ob := fb.Forward(fb.Encode(x, 1))
				assert.Empty(t, cmp.Diff(oi, ob), "dims %v seed %d sample %d", dims, seed, s)
			}
			assert.Equal(t, weights(t, fi), weights(t, fb), "dims %v seed %d", dims, seed)
		}
	}
}

func TestReproducible(t *testing.T) {
	train := func() []byte {
		f := MustNewBit(rng.New(42), 2, 32, 16, 1)
		f.ResetWeight()
		raw := make([]int8, layer.BatchSize*2)
		grad := make([]float64, layer.BatchSize)
		for s := 0; s < 50; s++ {
			step(f, raw, grad)
		}
		return weights(t, f)
	}
	first := train()
	assert.Len(t, first, (4+16*8+16*32*4)+(4+1*8+1*16*4)+(4+32*8+32*2*4))
	assert.True(t, bytes.Equal(first, train()))
}

func TestWeightsFile(t *testing.T) {
	src := MustNewInt(rng.New(4), 6, 12, 3)
	src.ResetWeight()
	raw := make([]int8, layer.BatchSize*6)
	grad := make([]float64, layer.BatchSize*3)
	for s := 0; s < 10; s++ {
		step(src, raw, grad)
	}
	dir := t.TempDir()

	plain := filepath.Join(dir, "weights.bin")
	require.NoError(t, src.WriteWeightsToFile(plain))
	dst := MustNewBit(rng.New(5), 6, 12, 3)
	require.NoError(t, dst.ReadWeightsFromFile(plain))
	assert.Equal(t, weights(t, src), weights(t, dst))

	compressed := filepath.Join(dir, "weights.lzw")
	require.NoError(t, src.WriteCompressedWeightsToFile(compressed))
	again := MustNewInt(rng.New(6), 6, 12, 3)
	require.NoError(t, again.ReadCompressedWeightsFromFile(compressed))
	assert.Equal(t, weights(t, src), weights(t, again))

	x := raw[:6]
	want := append([]int32(nil), src.Forward(src.Encode(x, 1))...)
	assert.Equal(t, want, dst.Forward(dst.Encode(x, 1)))

	assert.Error(t, dst.ReadWeightsFromFile(filepath.Join(dir, "missing.bin")))
}

func TestLoadRejects(t *testing.T) {
	src := MustNewInt(rng.New(1), 2, 4, 3)
	src.ResetWeight()
	saved := weights(t, src)

	dst := MustNewInt(rng.New(2), 2, 4, 1)
	dst.ResetWeight()
	before := weights(t, dst)
	err := dst.Load(bytes.NewReader(saved))
	require.Error(t, err)
	dimErr, ok := errors.Cause(err).(*layer.DimensionError)
	require.True(t, ok, "unexpected error %v", err)
	assert.Equal(t, 1, dimErr.Expected)
	assert.Equal(t, 3, dimErr.Found)
	assert.Equal(t, before, weights(t, dst))

	same := MustNewInt(rng.New(2), 2, 4, 3)
	assert.Error(t, same.Load(bytes.NewReader(append(append([]byte(nil), saved...), 0))))
	assert.Error(t, same.Load(bytes.NewReader(saved[:len(saved)-1])))
	require.NoError(t, same.Load(bytes.NewReader(saved)))
	assert.Equal(t, saved, weights(t, same))
}
